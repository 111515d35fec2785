// Package annot loads vector annotations (named placemarks with point, line
// or polygon geometries) from KML or GeoJSON files.
package annot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"glyphprep/internal/mercator"
)

// Record is one named annotation. Geometry is read-only after parsing.
type Record struct {
	Name     string
	Geometry orb.Geometry
}

// Kind returns the geometry kind ("Point", "LineString", "Polygon", ...).
func (r Record) Kind() string { return r.Geometry.GeoJSONType() }

// Centroid returns the geographic center of the record's geometry: the point
// itself for a Point, the planar centroid otherwise. Masks are always
// self-centered on this value.
func (r Record) Centroid() mercator.Point {
	if p, ok := r.Geometry.(orb.Point); ok {
		return mercator.Point{Lat: p.Lat(), Lon: p.Lon()}
	}
	c, _ := planar.CentroidArea(r.Geometry)
	return mercator.Point{Lat: c.Lat(), Lon: c.Lon()}
}

// Load reads annotations from a .kml, .geojson or .json file.
func Load(path string) ([]Record, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".kml":
		return LoadKML(path)
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	default:
		return nil, fmt.Errorf("unsupported annotation format %q", ext)
	}
}

var errNoRecords = errors.New("no placemarks with geometry found")
