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

// extractRings collects the boundary rings of every polygon in fc into
// a flat line set: for each polygon, its exterior ring followed by its
// interior (hole) rings, across all features in collection order.
// Polygons that fail the kernel's validity test are repaired before
// extraction; the repaired geometry is used for extraction only and
// the source collection is left untouched. A feature whose geometry is
// not a polygon or multi-polygon causes an
// UnsupportedGeometryTypeError.
func extractRings(k Kernel, fc *FeatureCollection) (geom.MultiLineString, error) {
	var rings geom.MultiLineString
	for _, f := range fc.Features {
		var polys []geom.Polygon
		switch g := f.Geom.(type) {
		case geom.Polygon:
			polys = []geom.Polygon{g}
		case geom.MultiPolygon:
			polys = g
		default:
			return nil, UnsupportedGeometryTypeError{Geom: f.Geom}
		}
		for _, p := range polys {
			valid, err := k.IsValid(p)
			if err != nil {
				return nil, fmt.Errorf("overlay: testing polygon validity: %w", err)
			}
			if !valid {
				// Invalid geometry from the layer; let the kernel fix it.
				p, err = k.Repair(p)
				if err != nil {
					return nil, fmt.Errorf("overlay: repairing polygon: %w", err)
				}
			}
			for _, r := range p {
				rings = append(rings, closeRing(r))
			}
		}
	}
	return rings, nil
}

// closeRing copies ring into a LineString whose last point repeats its
// first, as polygonization of the merged arrangement requires closed
// boundary curves.
func closeRing(ring []geom.Point) geom.LineString {
	l := make(geom.LineString, len(ring), len(ring)+1)
	copy(l, ring)
	if len(l) > 0 && !l[0].Equals(l[len(l)-1]) {
		l = append(l, l[0])
	}
	return l
}
