// Package sites reads the geoglyph site table and writes the generated
// negative-candidate table.
package sites

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"glyphprep/internal/mercator"
)

// Site is one known geoglyph location from the metadata table.
type Site struct {
	Form  string
	Code  string
	Point mercator.Point
}

// Candidate is a generated negative location, keyed by the positive site it
// was offset from.
type Candidate struct {
	OriginCode string
	Point      mercator.Point
}

// LoadCSV reads a site table with form/code/lat/lon columns.
// Column detection is by header name, case-insensitive: form, code|id,
// lat|latitude, lon|lng|long|longitude. Rows with unparseable coordinates
// are skipped.
func LoadCSV(path string) ([]Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty site table")
	}

	idxForm, idxCode, idxLat, idxLon := -1, -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "form":
			if idxForm == -1 {
				idxForm = i
			}
		case "code", "id":
			if idxCode == -1 {
				idxCode = i
			}
		case "lat", "latitude":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxForm == -1 || idxCode == -1 || idxLat == -1 || idxLon == -1 {
		return nil, errors.New("site table: form/code/lat/lon columns not found")
	}

	var out []Site
	for _, row := range recs[1:] {
		if idxForm >= len(row) || idxCode >= len(row) || idxLat >= len(row) || idxLon >= len(row) {
			continue
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Site{
			Form:  strings.TrimSpace(row[idxForm]),
			Code:  strings.TrimSpace(row[idxCode]),
			Point: mercator.Point{Lat: lat, Lon: lon},
		})
	}
	if len(out) == 0 {
		return nil, errors.New("site table: no valid rows parsed")
	}
	return out, nil
}

// FilterForm returns the sites whose form matches exactly.
func FilterForm(all []Site, form string) []Site {
	var out []Site
	for _, s := range all {
		if s.Form == form {
			out = append(out, s)
		}
	}
	return out
}

// WriteCandidates writes the negative-candidate table with columns
// orig_code, lat, lon.
func WriteCandidates(path string, cands []Candidate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"orig_code", "lat", "lon"}); err != nil {
		return err
	}
	for _, c := range cands {
		rec := []string{
			c.OriginCode,
			strconv.FormatFloat(c.Point.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Point.Lon, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
