package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gallerydesk/internal/core"
)

// settingRequest is the payload for creating or updating a setting. Values
// stay opaque strings end to end.
type settingRequest struct {
	ParameterName  string `json:"parameterName" validate:"required"`
	ParameterValue string `json:"parameterValue" validate:"required"`
	Notes          string `json:"notes"`
}

func (s *Server) decodeSetting(r *http.Request) (core.Setting, string) {
	var req settingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return core.Setting{}, "invalid request body"
	}
	if err := s.validate.Struct(req); err != nil {
		return core.Setting{}, "invalid setting: " + err.Error()
	}
	return core.Setting{
		ParameterName:  req.ParameterName,
		ParameterValue: req.ParameterValue,
		Notes:          req.Notes,
	}, ""
}

// handleListSettings returns the full settings collection.
func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.store.Settings())
}

// handleCreateSetting appends a new setting.
func (s *Server) handleCreateSetting(w http.ResponseWriter, r *http.Request) {
	setting, msg := s.decodeSetting(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, exists := s.store.FindSetting(setting.ParameterName); exists {
		writeError(w, http.StatusConflict, "parameter name already exists")
		return
	}
	s.store.AddSetting(setting)
	writeJSONStatus(w, http.StatusCreated, setting)
}

// handleUpdateSetting replaces the setting with the given parameter name.
func (s *Server) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing parameter name")
		return
	}

	setting, msg := s.decodeSetting(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if !s.store.UpdateSetting(name, setting) {
		writeError(w, http.StatusNotFound, "setting not found")
		return
	}
	writeJSON(w, setting)
}

// handleDeleteSetting removes the setting with the given parameter name.
func (s *Server) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing parameter name")
		return
	}
	if !s.store.DeleteSetting(name) {
		writeError(w, http.StatusNotFound, "setting not found")
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}
