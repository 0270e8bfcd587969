package core

// store.go is the single source of truth for the three in-memory
// collections. The store trusts its callers: validation happens upstream in
// the row validators, and no background process re-checks records once they
// are inside. Each mutation is atomic with respect to the one collection it
// touches; nothing here is persisted, so a restart returns to the seed data.

import "sync"

// Store holds the artist, sale, and setting collections. It is an explicitly
// owned state object: the import pipeline and report engine receive a *Store
// rather than reaching for process-wide state, and its methods are the only
// write surface.
type Store struct {
	mu       sync.RWMutex
	artists  []Artist
	sales    []Sale
	settings []Setting
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Seed installs the boot sample records. A reload discards all state back to
// these values.
func (s *Store) Seed() {
	s.SetArtists([]Artist{
		{
			ArtistCode:     "JD001",
			FirstName:      "John",
			LastName:       "Doe",
			FullName:       "John Doe",
			CommissionRate: 0.7,
			Email:          "john@example.com",
			Classification: ClassMember,
		},
	})
	s.SetSales([]Sale{
		{
			SalesID:        1,
			Date:           "2024-03-15",
			ArtistCode:     "JD001",
			Qty:            1,
			PricePointName: "Standard",
			SKU:            "SKU123",
			GrossSales:     100.00,
			Notes:          "Sample sale",
		},
	})
	s.SetSettings([]Setting{
		{
			ParameterName:  "DefaultCommissionRate",
			ParameterValue: "0.7",
			Notes:          "Default commission rate for new artists",
		},
	})
}

// Artists returns a copy of the artist collection.
func (s *Store) Artists() []Artist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Artist, len(s.artists))
	copy(out, s.artists)
	return out
}

// Sales returns a copy of the sales collection.
func (s *Store) Sales() []Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// Settings returns a copy of the settings collection.
func (s *Store) Settings() []Setting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Setting, len(s.settings))
	copy(out, s.settings)
	return out
}

// SetArtists replaces the entire artist collection.
func (s *Store) SetArtists(artists []Artist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artists = append([]Artist(nil), artists...)
}

// SetSales replaces the entire sales collection. Ids are taken as given.
func (s *Store) SetSales(sales []Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append([]Sale(nil), sales...)
}

// SetSettings replaces the entire settings collection.
func (s *Store) SetSettings(settings []Setting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = append([]Setting(nil), settings...)
}

// AppendSales concatenates new sales onto the existing collection, assigning
// each a SalesID starting at max(current max id, 0)+1 in input order.
// Existing records are untouched.
func (s *Store) AppendSales(sales []Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.maxSalesIDLocked() + 1
	for _, sale := range sales {
		sale.SalesID = next
		next++
		s.sales = append(s.sales, sale)
	}
}

// AddArtist appends an artist. The store does not reject duplicate codes;
// lookups that key by code resolve to the first match, so the caller is
// responsible for uniqueness.
func (s *Store) AddArtist(a Artist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artists = append(s.artists, a)
}

// FindArtist returns the artist with the given code.
func (s *Store) FindArtist(code string) (Artist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.artists {
		if a.ArtistCode == code {
			return a, true
		}
	}
	return Artist{}, false
}

// UpdateArtist replaces every artist whose code matches. Returns false if no
// record matched.
func (s *Store) UpdateArtist(code string, a Artist) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for i := range s.artists {
		if s.artists[i].ArtistCode == code {
			s.artists[i] = a
			found = true
		}
	}
	return found
}

// DeleteArtist removes every artist whose code matches. Sales referencing
// the code are left alone; views resolve the dangling code to a fallback
// display.
func (s *Store) DeleteArtist(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.artists[:0]
	found := false
	for _, a := range s.artists {
		if a.ArtistCode == code {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	s.artists = kept
	return found
}

// AddSale appends a sale with the next id and returns the stored record.
func (s *Store) AddSale(sale Sale) Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.SalesID = s.maxSalesIDLocked() + 1
	s.sales = append(s.sales, sale)
	return sale
}

// FindSale returns the sale with the given id.
func (s *Store) FindSale(id int) (Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sale := range s.sales {
		if sale.SalesID == id {
			return sale, true
		}
	}
	return Sale{}, false
}

// UpdateSale replaces the sale with the given id, preserving the id.
func (s *Store) UpdateSale(id int, sale Sale) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].SalesID == id {
			sale.SalesID = id
			s.sales[i] = sale
			return true
		}
	}
	return false
}

// DeleteSale removes the sale with the given id.
func (s *Store) DeleteSale(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].SalesID == id {
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			return true
		}
	}
	return false
}

// AddSetting appends a setting.
func (s *Store) AddSetting(set Setting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = append(s.settings, set)
}

// FindSetting returns the setting with the given parameter name.
func (s *Store) FindSetting(name string) (Setting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, set := range s.settings {
		if set.ParameterName == name {
			return set, true
		}
	}
	return Setting{}, false
}

// UpdateSetting replaces the setting with the given parameter name.
func (s *Store) UpdateSetting(name string, set Setting) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.settings {
		if s.settings[i].ParameterName == name {
			s.settings[i] = set
			return true
		}
	}
	return false
}

// DeleteSetting removes the setting with the given parameter name.
func (s *Store) DeleteSetting(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.settings {
		if s.settings[i].ParameterName == name {
			s.settings = append(s.settings[:i], s.settings[i+1:]...)
			return true
		}
	}
	return false
}

// MaxSalesID returns the highest assigned sale id, or 0 when empty.
func (s *Store) MaxSalesID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSalesIDLocked()
}

func (s *Store) maxSalesIDLocked() int {
	max := 0
	for _, sale := range s.sales {
		if sale.SalesID > max {
			max = sale.SalesID
		}
	}
	return max
}
