package core

import (
	"errors"
	"strings"
	"testing"
)

const artistsCSV = "Artist Code,First Name,Last Name,Commission Rate,Classification,Email\n" +
	"A1,Jo,Doe,0.2,Member,jo@example.com\n" +
	"B2,Pat,Lee,0.5,Gift Shop,\n"

func TestImport_Artists_Replaces(t *testing.T) {
	store := NewStore()
	store.SetArtists([]Artist{{ArtistCode: "OLD"}})
	im := NewImporter(store)

	result, err := im.Import(KindArtists, "artists.csv", strings.NewReader(artistsCSV))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Rows != 2 {
		t.Errorf("Rows = %d, want 2", result.Rows)
	}
	if result.ImportID == "" {
		t.Error("ImportID should be set")
	}

	artists := store.Artists()
	if len(artists) != 2 {
		t.Fatalf("len(artists) = %d, want 2 (full replace)", len(artists))
	}
	if artists[0].ArtistCode != "A1" || artists[0].FullName != "Jo Doe" {
		t.Errorf("got %+v", artists[0])
	}
	if im.StreamError(KindArtists) != "" {
		t.Errorf("stream error = %q, want empty", im.StreamError(KindArtists))
	}
}

func TestImport_AllOrNothing(t *testing.T) {
	existing := []Artist{{ArtistCode: "KEEP", FullName: "Keep Me"}}
	store := NewStore()
	store.SetArtists(existing)
	im := NewImporter(store)

	// Row 3 has an out-of-range commission rate.
	csv := "artistcode,firstname,lastname,commissionrate,classification\n" +
		"A1,Jo,Doe,0.2,Member\n" +
		"A2,Pat,Lee,0.3,Member\n" +
		"A3,Sam,Kim,3.0,Member\n" +
		"A4,Lou,Chu,0.4,Member\n" +
		"A5,Ada,Roe,0.5,Member\n"

	_, err := im.Import(KindArtists, "bad.csv", strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for invalid row")
	}

	var re *RowError
	if !errors.As(err, &re) {
		t.Fatalf("error = %T, want *RowError", err)
	}
	if re.Row != 3 {
		t.Errorf("failing row = %d, want 3", re.Row)
	}
	if re.Reason != ReasonOutOfRange {
		t.Errorf("Reason = %q, want %q", re.Reason, ReasonOutOfRange)
	}

	artists := store.Artists()
	if len(artists) != 1 || artists[0].ArtistCode != "KEEP" {
		t.Errorf("existing collection must be unchanged, got %+v", artists)
	}

	slot := im.StreamError(KindArtists)
	if !strings.Contains(slot, "row 3") {
		t.Errorf("stream error %q should name the failing row", slot)
	}
}

func TestImport_Sales_AppendsWithIDs(t *testing.T) {
	store := NewStore()
	store.SetSales([]Sale{{SalesID: 5, Date: "2024-01-01", ArtistCode: "A1", GrossSales: 1}})
	im := NewImporter(store)

	csv := "Date,Artist Code,Qty,Gross Sales\n" +
		"2024-05-01,A1,2,100\n" +
		"5/2/2024,A1,1,50\n" +
		"2024-05-03,B2,0,0\n"

	result, err := im.Import(KindSales, "sales.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Rows != 3 {
		t.Errorf("Rows = %d, want 3", result.Rows)
	}

	sales := store.Sales()
	if len(sales) != 4 {
		t.Fatalf("len(sales) = %d, want 4 (append, not replace)", len(sales))
	}
	for i, want := range []int{6, 7, 8} {
		if got := sales[1+i].SalesID; got != want {
			t.Errorf("sale %d id = %d, want %d", i, got, want)
		}
	}
	// US-form date canonicalized
	if sales[2].Date != "2024-05-02" {
		t.Errorf("Date = %q, want 2024-05-02", sales[2].Date)
	}
}

func TestImport_Settings_Replaces(t *testing.T) {
	store := NewStore()
	store.SetSettings([]Setting{{ParameterName: "OLD", ParameterValue: "x"}})
	im := NewImporter(store)

	csv := "Parameter Name,Parameter Value,Notes\nTaxRate,0.08,state tax\n"
	if _, err := im.Import(KindSettings, "settings.csv", strings.NewReader(csv)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	settings := store.Settings()
	if len(settings) != 1 || settings[0].ParameterName != "TaxRate" {
		t.Errorf("got %+v", settings)
	}
}

func TestImport_EmptyFile(t *testing.T) {
	store := NewStore()
	im := NewImporter(store)

	for _, input := range []string{"", "artistcode,firstname\n"} {
		_, err := im.Import(KindArtists, "empty.csv", strings.NewReader(input))
		var re *RowError
		if !errors.As(err, &re) || re.Reason != ReasonEmptyImport {
			t.Errorf("input %q: error = %v, want EmptyImport", input, err)
		}
	}
}

func TestImport_UnreadableFile(t *testing.T) {
	store := NewStore()
	im := NewImporter(store)

	// Unbalanced quote makes the CSV unparseable.
	_, err := im.Import(KindSales, "broken.csv", strings.NewReader("date,qty\n\"2024"))
	var re *RowError
	if !errors.As(err, &re) || re.Reason != ReasonFileRead {
		t.Fatalf("error = %v, want FileReadError", err)
	}
	if !strings.Contains(im.StreamError(KindSales), "Error reading sales file") {
		t.Errorf("stream error = %q", im.StreamError(KindSales))
	}
}

func TestImport_StreamErrorsAreIndependent(t *testing.T) {
	store := NewStore()
	im := NewImporter(store)

	// A successful artists import...
	if _, err := im.Import(KindArtists, "a.csv", strings.NewReader(artistsCSV)); err != nil {
		t.Fatalf("artists import failed: %v", err)
	}

	// ...must survive a failed sales import untouched.
	badSales := "date,artistcode,qty,grosssales\nnot-a-date,A1,1,10\n"
	if _, err := im.Import(KindSales, "s.csv", strings.NewReader(badSales)); err == nil {
		t.Fatal("expected sales import to fail")
	}

	if im.StreamError(KindArtists) != "" {
		t.Error("artists slot must not be affected by a sales failure")
	}
	if im.StreamError(KindSales) == "" {
		t.Error("sales slot should hold the failure")
	}
	if len(store.Artists()) != 2 {
		t.Error("artists collection must be intact")
	}
}

func TestImport_CompletionCallback(t *testing.T) {
	store := NewStore()
	im := NewImporter(store)

	var completed []Kind
	im.OnComplete(func(result ImportResult) {
		completed = append(completed, result.Kind)
	})

	im.Import(KindArtists, "a.csv", strings.NewReader(artistsCSV))
	im.Import(KindArtists, "bad.csv", strings.NewReader("artistcode\nA1\n"))

	if len(completed) != 1 || completed[0] != KindArtists {
		t.Errorf("completed = %v, want one artists completion", completed)
	}

	// Clearing the callback stops further notifications.
	im.OnComplete(nil)
	if _, err := im.Import(KindArtists, "a.csv", strings.NewReader(artistsCSV)); err != nil {
		t.Fatalf("import after clearing callback: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("completed = %v after clearing callback", completed)
	}
}

func TestImport_EndToEndReport(t *testing.T) {
	store := NewStore()
	im := NewImporter(store)

	artists := "artistcode,firstname,lastname,commissionrate,classification\n" +
		"A1,Jo,Doe,0.2,Member\n"
	if _, err := im.Import(KindArtists, "a.csv", strings.NewReader(artists)); err != nil {
		t.Fatalf("artists import: %v", err)
	}

	sales := "date,artistcode,qty,grosssales\n2024-05-01,A1,2,100\n"
	if _, err := im.Import(KindSales, "s.csv", strings.NewReader(sales)); err != nil {
		t.Fatalf("sales import: %v", err)
	}

	summary := Summarize(store.Artists(), store.Sales(), Period{Month: 5, Year: 2024})
	if len(summary.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(summary.Rows))
	}
	row := summary.Rows[0]
	if row.ArtistCode != "A1" || row.GrossSales != 100 || row.Commission != 20 {
		t.Errorf("row = %+v", row)
	}
	if summary.TotalGross != 100 || summary.TotalCommission != 20 {
		t.Errorf("totals = %v/%v", summary.TotalGross, summary.TotalCommission)
	}
}
