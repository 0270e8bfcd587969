package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gallerydesk/internal/core"
	"gallerydesk/internal/logging"
)

// handleImport ingests one CSV file for a stream. The import is
// all-or-nothing: any invalid row rejects the whole file and leaves the
// store untouched.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown import stream")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	result, err := s.importer.Import(kind, header.Filename, file)
	if err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	logging.FromContext(r.Context()).Info("import complete",
		"kind", kind,
		"file", header.Filename,
		"rows", result.Rows,
		"import_id", result.ImportID,
		"duration_ms", result.Duration.Milliseconds(),
	)
	writeJSON(w, result)
}

// handleImportStatus reports each stream's independent error slot. A failed
// import in one stream never clears another stream's state.
func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	errs := s.importer.StreamErrors()
	status := make(map[core.Kind]string, len(core.Kinds))
	for _, kind := range core.Kinds {
		status[kind] = errs[kind]
	}
	writeJSON(w, status)
}
