package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-pdf/fpdf"

	"style-finder/internal/domain"
)

// DocumentInput is everything that goes onto the report page. Text fields are sanitized
// by the renderer before they reach the PDF.
type DocumentInput struct {
	Title         string
	Name          string
	ParticipantID string
	IDLabel       string
	Style         domain.Style
	Score         int
	Description   string
	Chart         []byte
	Logo          []byte
}

type DocumentRenderer interface {
	Render(in DocumentInput) ([]byte, error)
}

// PDFDocument lays the report out on A4 using the PDF core fonts.
type PDFDocument struct {
	ChartWidth float64
}

func NewPDFDocument() *PDFDocument {
	return &PDFDocument{ChartWidth: 130}
}

func (d *PDFDocument) Render(in DocumentInput) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(SanitizeText(in.Title), false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	top := 10.0
	if len(in.Logo) > 0 {
		opts, err := imageOptions(in.Logo)
		if err != nil {
			return nil, err
		}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(in.Logo))
		pdf.ImageOptions("logo", 10, 8, 40, 0, false, opts, 0, "")
		top = 35
	}

	pdf.SetY(top)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, SanitizeText(in.Title), "", 1, "C", false, 0, "")

	idLabel := in.IDLabel
	if idLabel == "" {
		idLabel = "Participant ID"
	}
	pdf.SetFont("Helvetica", "", 12)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, "Name: "+SanitizeText(in.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, SanitizeText(idLabel)+": "+SanitizeText(in.ParticipantID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Style: "+SanitizeText(string(in.Style))+" ("+strconv.Itoa(in.Score)+")", "", 1, "L", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, SanitizeText(in.Description), "", "L", false)

	if len(in.Chart) > 0 {
		opts, err := imageOptions(in.Chart)
		if err != nil {
			return nil, err
		}
		width := d.ChartWidth
		if width <= 0 {
			width = 130
		}
		pageWidth, _ := pdf.GetPageSize()
		pdf.Ln(4)
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(in.Chart))
		pdf.ImageOptions("chart", (pageWidth-width)/2, -1, width, 0, true, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.Bytes(), nil
}

func imageOptions(data []byte) (fpdf.ImageOptions, error) {
	switch mt := mimetype.Detect(data); {
	case mt.Is("image/png"):
		return fpdf.ImageOptions{ImageType: "PNG"}, nil
	case mt.Is("image/jpeg"):
		return fpdf.ImageOptions{ImageType: "JPG"}, nil
	default:
		return fpdf.ImageOptions{}, fmt.Errorf("%w: unsupported image type %s", ErrDocumentRender, mt.String())
	}
}
