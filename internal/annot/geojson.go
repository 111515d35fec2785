package annot

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON extracts named feature geometries from a GeoJSON file.
// The record name comes from the "name" property, then the feature ID,
// then a positional fallback.
func LoadGeoJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		// a single Feature document is also accepted
		f, ferr := geojson.UnmarshalFeature(data)
		if ferr != nil {
			return nil, err
		}
		fc = geojson.NewFeatureCollection()
		fc.Append(f)
	}

	var records []Record
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		name := ""
		if s, ok := f.Properties["name"].(string); ok {
			name = s
		} else if s, ok := f.Properties["Name"].(string); ok {
			name = s
		} else if s, ok := f.ID.(string); ok {
			name = s
		}
		if name == "" {
			name = fmt.Sprintf("feature_%d", i)
		}
		records = append(records, Record{Name: name, Geometry: f.Geometry})
	}
	if len(records) == 0 {
		return nil, errNoRecords
	}
	return records, nil
}
