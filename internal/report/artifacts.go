package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ChartFileName    = "radar_chart.png"
	DocumentFileName = "management_style_report.pdf"
)

// ArtifactWriter stores each report's files in its own directory under Root.
type ArtifactWriter struct {
	Root string
}

type ArtifactPaths struct {
	Chart    string
	Document string
}

// Write creates Root/<reportID> exclusively and writes the chart (if any) and the document.
// Files appear under their final names only once fully written; on any failure the
// directory is removed.
func (w ArtifactWriter) Write(reportID string, chart, document []byte) (paths ArtifactPaths, err error) {
	if reportID == "" || filepath.Base(reportID) != reportID {
		return ArtifactPaths{}, fmt.Errorf("%w: invalid report id %q", ErrArtifactWrite, reportID)
	}
	if len(document) == 0 {
		return ArtifactPaths{}, fmt.Errorf("%w: empty document", ErrArtifactWrite)
	}
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return ArtifactPaths{}, fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}
	dir := filepath.Join(w.Root, reportID)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return ArtifactPaths{}, fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(dir)
		}
	}()

	if len(chart) > 0 {
		paths.Chart = filepath.Join(dir, ChartFileName)
		if err = writeFileAtomic(paths.Chart, chart); err != nil {
			return ArtifactPaths{}, err
		}
	}
	paths.Document = filepath.Join(dir, DocumentFileName)
	if err = writeFileAtomic(paths.Document, document); err != nil {
		return ArtifactPaths{}, err
	}
	return paths, nil
}

// Remove deletes a report directory written earlier.
func (w ArtifactWriter) Remove(reportID string) error {
	if reportID == "" || filepath.Base(reportID) != reportID {
		return nil
	}
	return os.RemoveAll(filepath.Join(w.Root, reportID))
}

// StoredReport is a report directory found under Root.
type StoredReport struct {
	ID      string
	ModTime time.Time
}

// List returns the report directories under Root. A missing Root is empty.
func (w ArtifactWriter) List() ([]StoredReport, error) {
	entries, err := os.ReadDir(w.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}
	out := make([]StoredReport, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, StoredReport{ID: e.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".partial-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrArtifactWrite, filepath.Base(path), cause)
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrArtifactWrite, filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrArtifactWrite, filepath.Base(path), err)
	}
	return nil
}
