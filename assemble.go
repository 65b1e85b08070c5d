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

// assemble builds the output collection from the included candidates.
// The output schema is layer1's non-geometry columns followed by
// layer2's non-geometry columns; both layers' geometry columns are
// dropped by name, tolerating their absence, and duplicate attribute
// names between the layers are kept as-is. Each candidate's face
// geometry is attached under the fixed column name "geometry", and
// features are laid down in face-recovery order, which renumbers the
// output index to 0..n-1.
func assemble(layer1, layer2 *FeatureCollection, cands []*candidate) *FeatureCollection {
	cols1, keep1 := layer1.attributeColumns()
	cols2, keep2 := layer2.attributeColumns()

	out := &FeatureCollection{
		Columns:        make([]string, 0, len(cols1)+len(cols2)),
		GeometryColumn: GeometryColumn,
		Features:       make([]*Feature, 0, len(cands)),
	}
	out.Columns = append(out.Columns, cols1...)
	out.Columns = append(out.Columns, cols2...)

	for _, c := range cands {
		values := make([]interface{}, 0, len(out.Columns))
		for _, i := range keep1 {
			values = append(values, c.values1[i])
		}
		for _, i := range keep2 {
			values = append(values, c.values2[i])
		}
		out.Features = append(out.Features, &Feature{Geom: c.Polygon, Values: values})
	}
	return out
}
