package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gallerydesk/internal/core"
)

// artistRequest is the payload for creating or updating an artist.
// Classification is checked against the closed enum separately since its
// values contain spaces.
type artistRequest struct {
	ArtistCode     string  `json:"artistCode" validate:"required"`
	FirstName      string  `json:"firstName" validate:"required"`
	LastName       string  `json:"lastName" validate:"required"`
	FullName       string  `json:"fullName"`
	CommissionRate float64 `json:"commissionRate" validate:"gte=0,lte=1"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Classification string  `json:"classification" validate:"required"`
}

// toArtist builds the domain record, synthesizing FullName when the form
// leaves it blank.
func (req artistRequest) toArtist() core.Artist {
	full := strings.TrimSpace(req.FullName)
	if full == "" {
		full = req.FirstName + " " + req.LastName
	}
	return core.Artist{
		ArtistCode:     req.ArtistCode,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		FullName:       full,
		CommissionRate: req.CommissionRate,
		Email:          req.Email,
		Classification: core.Classification(req.Classification),
	}
}

// decodeArtist parses and validates an artist payload.
func (s *Server) decodeArtist(r *http.Request) (artistRequest, string) {
	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, "invalid request body"
	}
	if err := s.validate.Struct(req); err != nil {
		return req, "invalid artist: " + err.Error()
	}
	if !core.Classification(req.Classification).Valid() {
		return req, "invalid classification"
	}
	return req, ""
}

// handleListArtists returns the full artist collection.
func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.store.Artists())
}

// handleCreateArtist appends a new artist. Duplicate codes are not rejected
// by the store, so the handler refuses obvious collisions at the edge.
func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	req, msg := s.decodeArtist(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if _, exists := s.store.FindArtist(req.ArtistCode); exists {
		writeError(w, http.StatusConflict, "artist code already exists")
		return
	}

	artist := req.toArtist()
	s.store.AddArtist(artist)
	writeJSONStatus(w, http.StatusCreated, artist)
}

// handleUpdateArtist replaces the artist with the given code. The code is
// the record's identity and comes from the URL; a different code in the body
// is ignored rather than rewriting the identity.
func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing artist code")
		return
	}

	req, msg := s.decodeArtist(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	artist := req.toArtist()
	artist.ArtistCode = code
	if !s.store.UpdateArtist(code, artist) {
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}
	writeJSON(w, artist)
}

// handleDeleteArtist removes the artist. Sales referencing the code are left
// in place; list and report views fall back to showing the raw code.
func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing artist code")
		return
	}
	if !s.store.DeleteArtist(code) {
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}
