package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gallerydesk/internal/core"
)

func TestNew_CreatesStreamFolders(t *testing.T) {
	root := t.TempDir()
	store := core.NewStore()
	if _, err := New(root, core.NewImporter(store)); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, kind := range core.Kinds {
		if _, err := os.Stat(filepath.Join(root, string(kind))); err != nil {
			t.Errorf("missing %s folder: %v", kind, err)
		}
	}
}

func TestSweep_ImportsAndMoves(t *testing.T) {
	root := t.TempDir()
	store := core.NewStore()
	w, err := New(root, core.NewImporter(store))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	csv := "Artist Code,First Name,Last Name,Commission Rate,Classification\n" +
		"A1,Jo,Doe,0.2,Member\n"
	dropped := filepath.Join(root, "artists", "artists.csv")
	if err := os.WriteFile(dropped, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-CSV files are ignored.
	if err := os.WriteFile(filepath.Join(root, "artists", "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w.Sweep()

	if len(store.Artists()) != 1 {
		t.Fatalf("len(artists) = %d, want 1", len(store.Artists()))
	}
	if _, err := os.Stat(dropped); !os.IsNotExist(err) {
		t.Error("imported file should have been moved out of the drop folder")
	}
	moved := filepath.Join(root, "artists", uploadedDir, "artists.csv")
	if _, err := os.Stat(moved); err != nil {
		t.Errorf("file not in Uploaded folder: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "artists", "notes.txt")); err != nil {
		t.Errorf("non-CSV file should be untouched: %v", err)
	}
}

func TestSweep_FailedImportStaysInPlace(t *testing.T) {
	root := t.TempDir()
	store := core.NewStore()
	importer := core.NewImporter(store)
	w, err := New(root, importer)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	csv := "artistcode,firstname,lastname,commissionrate,classification\nA1,Jo,Doe,9,Member\n"
	dropped := filepath.Join(root, "artists", "bad.csv")
	if err := os.WriteFile(dropped, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	w.Sweep()

	if len(store.Artists()) != 0 {
		t.Error("invalid file must not modify the store")
	}
	if _, err := os.Stat(dropped); err != nil {
		t.Errorf("failed file should stay in the drop folder: %v", err)
	}
	if importer.StreamError(core.KindArtists) == "" {
		t.Error("failure should be recorded in the stream's error slot")
	}
}

func TestSettled_DefersFilesStillBeingWritten(t *testing.T) {
	settle := 2 * time.Second
	start := time.Now()
	pending := map[string]time.Time{
		"imports/sales/big.csv":   start, // writer went quiet
		"imports/sales/fresh.csv": start.Add(settle - time.Millisecond),
	}

	got := settled(pending, start.Add(settle), settle)
	if len(got) != 1 || got[0] != "imports/sales/big.csv" {
		t.Fatalf("settled() = %v, want only the quiet file", got)
	}
	if _, ok := pending["imports/sales/fresh.csv"]; !ok {
		t.Error("file with recent writes must stay pending")
	}
	if _, ok := pending["imports/sales/big.csv"]; ok {
		t.Error("imported file must leave the pending set")
	}

	// A further write defers the remaining file again.
	pending["imports/sales/fresh.csv"] = start.Add(settle)
	if got := settled(pending, start.Add(settle+time.Millisecond), settle); len(got) != 0 {
		t.Errorf("settled() = %v, want none while writes continue", got)
	}
	if got := settled(pending, start.Add(2*settle), settle); len(got) != 1 {
		t.Errorf("settled() = %v, want the file once quiet", got)
	}
}

func TestKindForPath(t *testing.T) {
	root := filepath.Join("data", "imports")

	tests := []struct {
		path   string
		want   core.Kind
		wantOK bool
	}{
		{filepath.Join(root, "artists", "a.csv"), core.KindArtists, true},
		{filepath.Join(root, "sales", "s.csv"), core.KindSales, true},
		{filepath.Join(root, "stray.csv"), "", false},
		{filepath.Join(root, "artists", "Uploaded", "a.csv"), "", false},
		{filepath.Join(root, "unknown", "a.csv"), "", false},
	}

	for _, tt := range tests {
		got, ok := kindForPath(root, tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("kindForPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsCSV(t *testing.T) {
	for _, name := range []string{"a.csv", "A.CSV", "b.Csv"} {
		if !isCSV(name) {
			t.Errorf("isCSV(%q) = false", name)
		}
	}
	for _, name := range []string{"a.txt", "csv", "a.csv.bak"} {
		if isCSV(name) {
			t.Errorf("isCSV(%q) = true", name)
		}
	}
}
