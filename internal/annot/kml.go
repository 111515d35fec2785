package annot

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// LoadKML extracts named placemark geometries from a KML file.
// KML coordinates are "lon,lat[,alt]" tuples separated by whitespace; we
// ignore altitude. Placemarks may sit under Document and nested Folders.
func LoadKML(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	type kmlCoords struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPolygon struct {
		Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
		Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
	}
	type kmlMulti struct {
		Points      []kmlCoords  `xml:"Point"`
		LineStrings []kmlCoords  `xml:"LineString"`
		Polygons    []kmlPolygon `xml:"Polygon"`
	}
	type kmlPlacemark struct {
		Name       string       `xml:"name"`
		Point      *kmlCoords   `xml:"Point"`
		LineString *kmlCoords   `xml:"LineString"`
		Polygon    *kmlPolygon  `xml:"Polygon"`
		Multi      *kmlMulti    `xml:"MultiGeometry"`
	}
	type kmlContainer struct {
		Placemarks []kmlPlacemark  `xml:"Placemark"`
		Folders    []*kmlContainer `xml:"Folder"`
		Documents  []*kmlContainer `xml:"Document"`
	}

	var root kmlContainer
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	toPolygon := func(kp kmlPolygon) orb.Polygon {
		poly := orb.Polygon{orb.Ring(parseCoordinates(kp.Outer.Coordinates))}
		for _, in := range kp.Inner {
			poly = append(poly, orb.Ring(parseCoordinates(in.Coordinates)))
		}
		return poly
	}

	var records []Record
	var walk func(c *kmlContainer)
	walk = func(c *kmlContainer) {
		for _, pm := range c.Placemarks {
			name := strings.TrimSpace(pm.Name)
			if name == "" {
				name = "unnamed"
			}
			var g orb.Geometry
			switch {
			case pm.Point != nil:
				pts := parseCoordinates(pm.Point.Coordinates)
				if len(pts) == 0 {
					continue
				}
				g = pts[0]
			case pm.LineString != nil:
				ls := orb.LineString(parseCoordinates(pm.LineString.Coordinates))
				if len(ls) == 0 {
					continue
				}
				g = ls
			case pm.Polygon != nil:
				poly := toPolygon(*pm.Polygon)
				if len(poly[0]) == 0 {
					continue
				}
				g = poly
			case pm.Multi != nil:
				var coll orb.Collection
				for _, p := range pm.Multi.Points {
					if pts := parseCoordinates(p.Coordinates); len(pts) > 0 {
						coll = append(coll, pts[0])
					}
				}
				for _, l := range pm.Multi.LineStrings {
					if pts := parseCoordinates(l.Coordinates); len(pts) > 0 {
						coll = append(coll, orb.LineString(pts))
					}
				}
				for _, p := range pm.Multi.Polygons {
					if poly := toPolygon(p); len(poly[0]) > 0 {
						coll = append(coll, poly)
					}
				}
				if len(coll) == 0 {
					continue
				}
				g = coll
			default:
				continue
			}
			records = append(records, Record{Name: name, Geometry: g})
		}
		for _, f := range c.Folders {
			walk(f)
		}
		for _, d := range c.Documents {
			walk(d)
		}
	}
	walk(&root)

	if len(records) == 0 {
		return nil, errNoRecords
	}
	return records, nil
}

func parseCoordinates(s string) []orb.Point {
	var out []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, orb.Point{lon, lat})
	}
	return out
}
