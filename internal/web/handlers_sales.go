package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gallerydesk/internal/core"
)

// saleRequest is the payload for creating or updating a sale. Dates are
// accepted in either input form and canonicalized; ids are never taken from
// the client.
type saleRequest struct {
	Date           string  `json:"date" validate:"required"`
	ArtistCode     string  `json:"artistCode" validate:"required"`
	Qty            int     `json:"qty"`
	PricePointName string  `json:"pricePointName"`
	SKU            string  `json:"sku"`
	GrossSales     float64 `json:"grossSales" validate:"gte=0"`
	Notes          string  `json:"notes"`
}

// saleView is a sale decorated with the owning artist's display name. When
// the artist code dangles, the raw code is shown instead.
type saleView struct {
	core.Sale
	ArtistName string `json:"artistName"`
}

func (s *Server) decodeSale(r *http.Request) (core.Sale, string) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return core.Sale{}, "invalid request body"
	}
	if err := s.validate.Struct(req); err != nil {
		return core.Sale{}, "invalid sale: " + err.Error()
	}

	date, ok := core.NormalizeDate(req.Date)
	if !ok {
		return core.Sale{}, "invalid date format. Expected YYYY-MM-DD or MM/DD/YYYY"
	}

	return core.Sale{
		Date:           date,
		ArtistCode:     req.ArtistCode,
		Qty:            req.Qty,
		PricePointName: req.PricePointName,
		SKU:            req.SKU,
		GrossSales:     req.GrossSales,
		Notes:          req.Notes,
	}, ""
}

// handleListSales returns all sales with resolved artist names.
func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales := s.store.Sales()
	views := make([]saleView, len(sales))
	for i, sale := range sales {
		name := sale.ArtistCode
		if artist, ok := s.store.FindArtist(sale.ArtistCode); ok {
			name = artist.FullName
		}
		views[i] = saleView{Sale: sale, ArtistName: name}
	}
	writeJSON(w, views)
}

// handleCreateSale appends a sale; the store assigns the next id.
func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	sale, msg := s.decodeSale(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	stored := s.store.AddSale(sale)
	writeJSONStatus(w, http.StatusCreated, stored)
}

// handleUpdateSale replaces the sale with the given id; the id itself is
// preserved.
func (s *Server) handleUpdateSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	sale, msg := s.decodeSale(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if !s.store.UpdateSale(id, sale) {
		writeError(w, http.StatusNotFound, "sale not found")
		return
	}
	sale.SalesID = id
	writeJSON(w, sale)
}

// handleDeleteSale removes the sale with the given id.
func (s *Server) handleDeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	if !s.store.DeleteSale(id) {
		writeError(w, http.StatusNotFound, "sale not found")
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}
