/*
Copyright © 2026 the Overlay authors.
This file is part of Overlay.

Overlay is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Overlay is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Overlay.  If not, see <http://www.gnu.org/licenses/>.
*/

package overlay

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
	"github.com/spf13/cast"
)

// Loading and saving of feature collections. These are conveniences
// for the surrounding application layer; they are not part of the
// overlay contract itself.

type geoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geoJSONCollection struct {
	Type     string            `json:"type"`
	Features []*geoJSONFeature `json:"features"`
}

// ReadGeoJSON reads a GeoJSON FeatureCollection document from r. The
// attribute schema is the union of the property keys of all features,
// in sorted order (JSON objects carry no column order of their own);
// features missing a key get a nil value for it. The geometry column
// is named "geometry".
func ReadGeoJSON(r io.Reader) (*FeatureCollection, error) {
	var doc geoJSONCollection
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("overlay: reading GeoJSON: %w", err)
	}

	colSet := make(map[string]struct{})
	for _, f := range doc.Features {
		for k := range f.Properties {
			colSet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(colSet))
	for k := range colSet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	fc := NewFeatureCollection(GeometryColumn, columns...)
	for i, f := range doc.Features {
		g, err := geojson.Decode(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("overlay: decoding geometry of GeoJSON feature %d: %w", i, err)
		}
		values := make([]interface{}, len(columns))
		for j, c := range columns {
			values[j] = f.Properties[c]
		}
		if err := fc.Add(g, values...); err != nil {
			return nil, err
		}
	}
	return fc, nil
}

// WriteGeoJSON writes fc to w as a GeoJSON FeatureCollection document.
// Because GeoJSON properties are JSON objects, duplicate column names
// collapse to the last column's value.
func WriteGeoJSON(w io.Writer, fc *FeatureCollection) error {
	doc := geoJSONCollection{
		Type:     "FeatureCollection",
		Features: make([]*geoJSONFeature, 0, len(fc.Features)),
	}
	for i, f := range fc.Features {
		b, err := geojson.Encode(f.Geom)
		if err != nil {
			return fmt.Errorf("overlay: encoding geometry of feature %d: %w", i, err)
		}
		props := make(map[string]interface{})
		for j, c := range fc.Columns {
			if c == fc.GeometryColumn {
				continue
			}
			props[c] = f.Values[j]
		}
		doc.Features = append(doc.Features, &geoJSONFeature{
			Type:       "Feature",
			Geometry:   b,
			Properties: props,
		})
	}
	e := json.NewEncoder(w)
	if err := e.Encode(&doc); err != nil {
		return fmt.Errorf("overlay: writing GeoJSON: %w", err)
	}
	return nil
}

// ReadShapefile reads a feature collection from a shapefile. All
// attribute fields are read, in the order the file declares them, as
// string values. The geometry column is named "geometry".
func ReadShapefile(filename string) (*FeatureCollection, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("overlay: opening shapefile %s: %w", filename, err)
	}
	defer d.Close()

	var columns []string
	for _, f := range d.Reader.Fields() {
		columns = append(columns, f.String())
	}

	fc := NewFeatureCollection(GeometryColumn, columns...)
	for {
		g, fields, more := d.DecodeRowFields(columns...)
		if !more {
			break
		}
		values := make([]interface{}, len(columns))
		for j, c := range columns {
			values[j] = fields[c]
		}
		if err := fc.Add(g, values...); err != nil {
			return nil, err
		}
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("overlay: reading shapefile %s: %w", filename, err)
	}
	return fc, nil
}

// WriteShapefile writes fc to a polygon shapefile. Attribute values
// are written as strings.
func WriteShapefile(filename string, fc *FeatureCollection) error {
	cols, keep := fc.attributeColumns()
	fields := make([]goshp.Field, len(cols))
	for i, c := range cols {
		fields[i] = goshp.StringField(c, 50)
	}
	e, err := shp.NewEncoderFromFields(filename, goshp.POLYGON, fields...)
	if err != nil {
		return fmt.Errorf("overlay: creating shapefile %s: %w", filename, err)
	}
	defer e.Close()

	for i, f := range fc.Features {
		vals := make([]interface{}, len(keep))
		for j, idx := range keep {
			vals[j] = cast.ToString(f.Values[idx])
		}
		if err := e.EncodeFields(f.Geom, vals...); err != nil {
			return fmt.Errorf("overlay: writing feature %d to shapefile %s: %w", i, filename, err)
		}
	}
	return nil
}
