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
	"fmt"

	"github.com/ctessum/geom"
)

// A Feature pairs one geometry with one attribute record. The record
// is positional: Values[i] belongs to the i'th column of the owning
// collection's schema.
type Feature struct {
	Geom   geom.Geom
	Values []interface{}
}

// A FeatureCollection is an ordered sequence of features sharing one
// attribute schema. Columns holds the attribute column names in order;
// duplicate names are allowed and are kept apart positionally.
// GeometryColumn names the column the geometry is considered to occupy.
// The geometry itself is always held in Feature.Geom rather than in
// Values, but loaders are permitted to list GeometryColumn in Columns;
// the overlay output drops it by name from both input schemas.
type FeatureCollection struct {
	Columns        []string
	GeometryColumn string
	Features       []*Feature
}

// NewFeatureCollection creates an empty collection with the given
// geometry column name and attribute schema.
func NewFeatureCollection(geometryColumn string, columns ...string) *FeatureCollection {
	return &FeatureCollection{
		Columns:        columns,
		GeometryColumn: geometryColumn,
	}
}

// Add appends a feature to fc. The number of values must match the
// number of schema columns.
func (fc *FeatureCollection) Add(g geom.Geom, values ...interface{}) error {
	if len(values) != len(fc.Columns) {
		return fmt.Errorf("overlay: feature has %d attribute values for %d columns",
			len(values), len(fc.Columns))
	}
	fc.Features = append(fc.Features, &Feature{Geom: g, Values: values})
	return nil
}

// Len returns the number of features in fc.
func (fc *FeatureCollection) Len() int { return len(fc.Features) }

// nullRecord returns an attribute record for fc's schema with every
// value set to nil.
func (fc *FeatureCollection) nullRecord() []interface{} {
	return make([]interface{}, len(fc.Columns))
}

// attributeColumns returns fc's columns with the geometry column, if
// present, dropped, together with the schema positions of the kept
// columns. A schema that does not list the geometry column is normal,
// not an error.
func (fc *FeatureCollection) attributeColumns() (cols []string, keep []int) {
	cols = make([]string, 0, len(fc.Columns))
	keep = make([]int, 0, len(fc.Columns))
	for i, c := range fc.Columns {
		if c == fc.GeometryColumn {
			continue
		}
		cols = append(cols, c)
		keep = append(keep, i)
	}
	return cols, keep
}
