package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"

	"style-finder/internal/domain"
)

// CatalogSource devuelve las preguntas en orden: PART 1..6 y, dentro de cada una, orden de filas.
type CatalogSource interface {
	Load(ctx context.Context) ([]domain.QuestionItem, error)
}

// LoadCatalog lee la fuente y valida el catalogo resultante.
func LoadCatalog(ctx context.Context, src CatalogSource) (domain.Catalog, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	return domain.NewCatalog(items)
}

// XLSXCatalogSource lee un libro con hojas "PART 1".."PART 6" (tambien "PART1").
// Columna 1 = id, columna 2 = texto; la primera fila es encabezado.
type XLSXCatalogSource struct {
	path string
}

func NewXLSXCatalogSource(path string) *XLSXCatalogSource {
	return &XLSXCatalogSource{path: path}
}

func (s *XLSXCatalogSource) Load(_ context.Context) ([]domain.QuestionItem, error) {
	if strings.TrimSpace(s.path) == "" {
		return nil, fmt.Errorf("%w: no workbook path configured", domain.ErrCatalogMissing)
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogMissing, s.path)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogMalformed, s.path, err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadCatalogWorkbook parsea un libro ya abierto desde un reader.
func ReadCatalogWorkbook(r io.Reader) ([]domain.QuestionItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]domain.QuestionItem, error) {
	sheets := partSheets(f.GetSheetList())
	var items []domain.QuestionItem
	for g := domain.MinGroup; g <= domain.MaxGroup; g++ {
		name, ok := sheets[g]
		if !ok {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", domain.ErrCatalogMalformed, name, err)
		}
		for i, row := range rows {
			if i == 0 {
				continue
			}
			rawID, text := cellAt(row, 0), cellAt(row, 1)
			if rawID == "" || text == "" {
				continue
			}
			id, err := parseQuestionID(rawID)
			if err != nil {
				return nil, fmt.Errorf("%w: sheet %q row %d: %v", domain.ErrCatalogMalformed, name, i+1, err)
			}
			items = append(items, domain.QuestionItem{ID: id, Text: text, Group: g})
		}
	}
	if len(items) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return items, nil
}

// partSheets prefers the exact "PART n" spelling when both variants exist.
func partSheets(names []string) map[domain.Group]string {
	out := make(map[domain.Group]string)
	for _, name := range names {
		g, err := domain.ParseGroup(name)
		if err != nil {
			continue
		}
		if _, taken := out[g]; taken && strings.TrimSpace(name) != g.String() {
			continue
		}
		out[g] = name
	}
	return out
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseQuestionID(raw string) (int, error) {
	if id, err := strconv.Atoi(raw); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("question id %q is not an integer", raw)
	}
	return int(f), nil
}

// PgCatalogSource lee el catalogo desde la tabla catalog_items.
type PgCatalogSource struct {
	pool *pgxpool.Pool
}

func NewPgCatalogSource(pool *pgxpool.Pool) *PgCatalogSource {
	return &PgCatalogSource{pool: pool}
}

func (r *PgCatalogSource) Load(ctx context.Context) ([]domain.QuestionItem, error) {
	const query = `
		SELECT question_id, question, part
		FROM catalog_items
		WHERE part BETWEEN 1 AND 6
		ORDER BY part, position
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMissing, err)
	}
	defer rows.Close()

	var items []domain.QuestionItem
	for rows.Next() {
		var (
			item domain.QuestionItem
			part int
		)
		if err := rows.Scan(&item.ID, &item.Text, &part); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
		}
		item.Text = strings.TrimSpace(item.Text)
		if item.Text == "" {
			continue
		}
		item.Group = domain.Group(part)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
	}
	if len(items) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return items, nil
}
