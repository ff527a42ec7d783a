package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	service "github.com/okian/pitchside/internal/app"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportDependencies defines the workbook export.
type ExportDependencies interface {
	Export(ctx context.Context, q service.Query, w io.Writer) error
}

// ExportHandler streams the filtered roster as a workbook.
type ExportHandler struct {
	deps ExportDependencies
	now  func() time.Time
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps, now: time.Now}
}

// HandleExport handles GET /api/v1/export.xlsx. The workbook is built in
// memory so a failed run still gets a JSON error.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_roster"
	var buf bytes.Buffer
	if err := h.deps.Export(r.Context(), parseQuery(r), &buf); err != nil {
		writeFailure(w, r, WrapKind(op, ErrExport, err))
		return
	}
	name := "roster-" + h.now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
