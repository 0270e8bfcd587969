package core

// importer.go orchestrates file ingestion: parse, normalize headers,
// validate every row, then apply the batch to the store with the
// kind-specific replace/append policy. Application is all-or-nothing at the
// file level: a single bad row rejects the whole import and leaves prior
// state untouched.
//
// Each of the three streams has an independent error slot, so a failed
// sales import never blocks or clears a previously successful artists
// import. Overlapping imports of the same kind are not serialized; the last
// completion wins, which is an accepted limitation of the original design.

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"gallerydesk/internal/csv"
)

// ImportResult summarizes a successful import.
type ImportResult struct {
	ImportID string        `json:"importId"`
	Kind     Kind          `json:"kind"`
	FileName string        `json:"fileName"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"-"`
}

// CompletionFunc is notified after an import is applied, so dependent views
// can refresh.
type CompletionFunc func(ImportResult)

// Importer runs the bulk-load pipeline against a store.
type Importer struct {
	store *Store

	mu         sync.Mutex
	onComplete CompletionFunc
	streamErrs map[Kind]string
}

// NewImporter creates an importer bound to the given store.
func NewImporter(store *Store) *Importer {
	return &Importer{
		store:      store,
		streamErrs: make(map[Kind]string),
	}
}

// OnComplete registers the completion callback. Pass nil to clear it. Safe
// to call while imports are running from other goroutines.
func (im *Importer) OnComplete(fn CompletionFunc) {
	im.mu.Lock()
	im.onComplete = fn
	im.mu.Unlock()
}

// StreamError returns the last error message for a stream, or "" if the
// stream's most recent import succeeded (or none has run).
func (im *Importer) StreamError(kind Kind) string {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.streamErrs[kind]
}

// StreamErrors returns a snapshot of all stream error slots.
func (im *Importer) StreamErrors() map[Kind]string {
	im.mu.Lock()
	defer im.mu.Unlock()
	out := make(map[Kind]string, len(im.streamErrs))
	for k, v := range im.streamErrs {
		out[k] = v
	}
	return out
}

// Import ingests one delimited-text file for the given stream. On any
// failure the error is recorded in that stream's slot and nothing is
// written to the store.
func (im *Importer) Import(kind Kind, fileName string, r io.Reader) (ImportResult, error) {
	start := time.Now()

	header, records, err := csv.Parse(r)
	if err != nil {
		ferr := rowErr(0, ReasonFileRead, "", fmt.Sprintf("Error reading %s file: %v", kind, err))
		return ImportResult{}, im.fail(kind, ferr)
	}

	rows := toRows(csv.Rows(header, records))
	if len(rows) == 0 {
		ferr := rowErr(0, ReasonEmptyImport, "", "No valid data found in file")
		return ImportResult{}, im.fail(kind, ferr)
	}

	if err := im.apply(kind, rows); err != nil {
		return ImportResult{}, im.fail(kind, err)
	}

	result := ImportResult{
		ImportID: uuid.New().String(),
		Kind:     kind,
		FileName: fileName,
		Rows:     len(rows),
		Duration: time.Since(start),
	}

	im.mu.Lock()
	delete(im.streamErrs, kind)
	fn := im.onComplete
	im.mu.Unlock()

	if fn != nil {
		fn(result)
	}
	return result, nil
}

// apply validates every row in file order, aborting on the first failure,
// then writes the batch using the kind's policy: artists and settings
// replace their collections, sales append with id assignment.
func (im *Importer) apply(kind Kind, rows []Row) error {
	switch kind {
	case KindArtists:
		artists := make([]Artist, 0, len(rows))
		for i, row := range rows {
			artist, err := ValidateArtistRow(i+1, row)
			if err != nil {
				return err
			}
			artists = append(artists, artist)
		}
		im.store.SetArtists(artists)

	case KindSales:
		sales := make([]Sale, 0, len(rows))
		for i, row := range rows {
			sale, err := ValidateSaleRow(i+1, row)
			if err != nil {
				return err
			}
			sales = append(sales, sale)
		}
		im.store.AppendSales(sales)

	case KindSettings:
		settings := make([]Setting, 0, len(rows))
		for i, row := range rows {
			setting, err := ValidateSettingRow(i+1, row)
			if err != nil {
				return err
			}
			settings = append(settings, setting)
		}
		im.store.SetSettings(settings)

	default:
		return fmt.Errorf("unknown import stream: %s", kind)
	}
	return nil
}

// fail records the error in the stream's slot and returns it. Other
// streams' slots are untouched. Read failures already carry their own
// "Error reading ..." prefix and are stored verbatim.
func (im *Importer) fail(kind Kind, err error) error {
	msg := fmt.Sprintf("Error processing %s file: %v", kind, err)
	var re *RowError
	if errors.As(err, &re) && re.Reason == ReasonFileRead {
		msg = re.Detail
	}
	im.mu.Lock()
	im.streamErrs[kind] = msg
	im.mu.Unlock()
	return err
}

func toRows(maps []map[string]string) []Row {
	rows := make([]Row, len(maps))
	for i, m := range maps {
		rows[i] = Row(m)
	}
	return rows
}
