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

// Package geoskernel implements overlay.Kernel on the GEOS topology
// library, via github.com/twpayne/go-geos. GEOS reports failures as
// panics; this package converts them at its boundary into ordinary
// error values so the overlay core can apply its explicit fast/robust
// union fallback. GEOS geometries created here are released by the
// context's finalizers.
//
// Containment uses the GEOS "intersects" predicate, so a probe point
// lying exactly on a feature boundary counts as inside; the overlay
// core inherits these semantics unchanged.
package geoskernel

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	geos "github.com/twpayne/go-geos"

	"github.com/spatialmodel/overlay"
)

// A Kernel supplies GEOS-backed geometry primitives to the overlay
// core. The underlying GEOS context serializes access internally, so a
// Kernel may be shared by concurrent classification goroutines.
type Kernel struct {
	ctx *geos.Context
}

// New creates a Kernel with its own GEOS context.
func New() *Kernel {
	return &Kernel{ctx: geos.NewContext()}
}

var _ overlay.Kernel = (*Kernel)(nil)

// catch converts a GEOS panic into an error value.
func catch(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = fmt.Errorf("geoskernel: %w", e)
			return
		}
		*err = fmt.Errorf("geoskernel: %v", r)
	}
}

// IsValid reports whether p is topologically valid.
func (k *Kernel) IsValid(p geom.Polygon) (valid bool, err error) {
	defer catch(&err)
	g, err := k.toGeos(closePolygon(p))
	if err != nil {
		return false, err
	}
	return g.IsValid(), nil
}

// Repair returns a valid version of p. The GEOS linework make-valid
// method keeps every lobe of a self-intersecting ring, unlike a
// zero-width buffer, which can drop one. When the result has several
// parts, the parts' rings are returned flattened into a single Polygon
// value, which is all the overlay's ring extraction needs.
func (k *Kernel) Repair(p geom.Polygon) (out geom.Polygon, err error) {
	defer catch(&err)
	g, err := k.toGeos(closePolygon(p))
	if err != nil {
		return nil, err
	}
	fixed := g.MakeValidWithParams(geos.MakeValidLinework, geos.MakeValidDiscardCollapsed)
	if fixed.IsEmpty() {
		return geom.Polygon{}, nil
	}
	gg, err := k.fromGeos(fixed)
	if err != nil {
		return nil, err
	}
	switch t := gg.(type) {
	case geom.Polygon:
		return t, nil
	case geom.MultiPolygon:
		for _, part := range t {
			out = append(out, part...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("geoskernel: repair produced a %T, not a polygon", gg)
	}
}

// FastUnion nodes the two ring sets with the GEOS unary union, the
// fast strategy that is known to fail numerically on some inputs. The
// failure comes back as an error for the caller's fallback logic.
func (k *Kernel) FastUnion(a, b geom.MultiLineString) (n overlay.Network, err error) {
	defer catch(&err)
	ga, err := k.toGeos(a)
	if err != nil {
		return nil, err
	}
	gb, err := k.toGeos(b)
	if err != nil {
		return nil, err
	}
	coll := k.ctx.NewCollection(geos.TypeIDGeometryCollection, []*geos.Geom{ga, gb})
	return coll.UnaryUnion(), nil
}

// RobustUnion nodes the two ring sets with the slower pairwise binary
// union.
func (k *Kernel) RobustUnion(a, b geom.MultiLineString) (n overlay.Network, err error) {
	defer catch(&err)
	ga, err := k.toGeos(a)
	if err != nil {
		return nil, err
	}
	gb, err := k.toGeos(b)
	if err != nil {
		return nil, err
	}
	return ga.Union(gb), nil
}

// Polygonize recovers the faces enclosed by the noded network.
func (k *Kernel) Polygonize(n overlay.Network) (faces []geom.Polygon, err error) {
	defer catch(&err)
	g, ok := n.(*geos.Geom)
	if !ok {
		return nil, fmt.Errorf("geoskernel: network is a %T, not a GEOS geometry", n)
	}
	coll := k.ctx.Polygonize([]*geos.Geom{g})
	faces = make([]geom.Polygon, 0, coll.NumGeometries())
	for i := 0; i < coll.NumGeometries(); i++ {
		gg, err := k.fromGeos(coll.Geometry(i))
		if err != nil {
			return nil, err
		}
		p, ok := gg.(geom.Polygon)
		if !ok {
			return nil, fmt.Errorf("geoskernel: polygonize produced a %T, not a polygon", gg)
		}
		faces = append(faces, p)
	}
	return faces, nil
}

// RepresentativePoint returns a point guaranteed to lie in the
// interior of p.
func (k *Kernel) RepresentativePoint(p geom.Polygon) (pt geom.Point, err error) {
	defer catch(&err)
	g, err := k.toGeos(closePolygon(p))
	if err != nil {
		return geom.Point{}, err
	}
	pos := g.PointOnSurface()
	return geom.Point{X: pos.X(), Y: pos.Y()}, nil
}

// Contains reports whether pt intersects p. Boundary points count as
// inside.
func (k *Kernel) Contains(p geom.Polygonal, pt geom.Point) (in bool, err error) {
	defer catch(&err)
	var gp *geos.Geom
	switch t := p.(type) {
	case geom.Polygon:
		gp, err = k.toGeos(closePolygon(t))
	case geom.MultiPolygon:
		closed := make(geom.MultiPolygon, len(t))
		for i, part := range t {
			closed[i] = closePolygon(part)
		}
		gp, err = k.toGeos(closed)
	default:
		gp, err = k.toGeos(p)
	}
	if err != nil {
		return false, err
	}
	gpt, err := k.toGeos(pt)
	if err != nil {
		return false, err
	}
	return gp.Intersects(gpt), nil
}

// toGeos converts a geometry to its GEOS counterpart through its
// GeoJSON encoding.
func (k *Kernel) toGeos(g geom.Geom) (*geos.Geom, error) {
	b, err := geojson.Encode(g)
	if err != nil {
		return nil, fmt.Errorf("geoskernel: encoding geometry: %w", err)
	}
	gg, err := k.ctx.NewGeomFromGeoJSON(string(b))
	if err != nil {
		return nil, fmt.Errorf("geoskernel: reading geometry into GEOS: %w", err)
	}
	return gg, nil
}

// fromGeos converts a GEOS geometry back through its GeoJSON encoding.
func (k *Kernel) fromGeos(g *geos.Geom) (geom.Geom, error) {
	gg, err := geojson.Decode([]byte(g.ToGeoJSON(-1)))
	if err != nil {
		return nil, fmt.Errorf("geoskernel: decoding geometry from GEOS: %w", err)
	}
	return gg, nil
}

// closePolygon returns p with every ring closed, as the GEOS reader
// requires the last point of a ring to repeat the first.
func closePolygon(p geom.Polygon) geom.Polygon {
	out := make(geom.Polygon, len(p))
	for i, ring := range p {
		r := make([]geom.Point, len(ring), len(ring)+1)
		copy(r, ring)
		if len(r) > 0 && !r[0].Equals(r[len(r)-1]) {
			r = append(r, r[0])
		}
		out[i] = r
	}
	return out
}
