package report

import "errors"

var (
	ErrChartRender      = errors.New("chart render failed")
	ErrDocumentRender   = errors.New("document render failed")
	ErrStyleTextMissing = errors.New("style description missing")
	ErrArtifactWrite    = errors.New("artifact write failed")
)
