package sites

import (
	"os"
	"path/filepath"
	"testing"

	"glyphprep/internal/mercator"
)

func pt(lat, lon float64) mercator.Point { return mercator.Point{Lat: lat, Lon: lon} }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "sites.csv",
		"form,code,lat,lon\n"+
			"circle,G1,-10.1,-67.2\n"+
			"square,G2,-9.8,-67.9\n"+
			"circle,G3,bad,-67.0\n")

	all, err := LoadCSV(p)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("parsed %d sites, want 2 (bad row skipped)", len(all))
	}
	if all[0].Code != "G1" || all[0].Point.Lat != -10.1 || all[0].Point.Lon != -67.2 {
		t.Errorf("first site = %+v", all[0])
	}

	circles := FilterForm(all, "circle")
	if len(circles) != 1 || circles[0].Code != "G1" {
		t.Errorf("FilterForm(circle) = %+v", circles)
	}
}

func TestLoadCSVHeaderVariants(t *testing.T) {
	p := writeFile(t, "sites.csv", "FORM,ID,Latitude,Longitude\ncircle,G9,1.5,2.5\n")
	all, err := LoadCSV(p)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(all) != 1 || all[0].Code != "G9" {
		t.Fatalf("got %+v", all)
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	p := writeFile(t, "sites.csv", "a,b\n1,2\n")
	if _, err := LoadCSV(p); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestWriteCandidatesRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "neg.csv")
	cands := []Candidate{
		{OriginCode: "G1", Point: pt(-10.002, -67.198)},
		{OriginCode: "G2", Point: pt(-9.799, -67.903)},
	}
	if err := WriteCandidates(p, cands); err != nil {
		t.Fatalf("WriteCandidates: %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	want := "orig_code,lat,lon\nG1,-10.002,-67.198\nG2,-9.799,-67.903\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", data, want)
	}
}
