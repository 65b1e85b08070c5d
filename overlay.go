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

// Package overlay computes the polygon overlay of two planar polygonal
// feature layers: given two collections of (multi)polygon features,
// each carrying an attribute record, it derives a new polygonal
// partition representing one of five boolean-style spatial relations
// and attaches the combined attributes of the contributing input
// features to each output polygon.
//
// The pipeline extracts the boundary rings of both layers, merges them
// into a single noded line arrangement, recovers the polygonal faces
// the arrangement encloses, classifies each face against both input
// layers with an interior-point containment probe, and assembles the
// included faces into the output collection. All geometry primitives
// (validity, repair, line union, polygonization, containment) are
// delegated to a Kernel; package geoskernel provides one backed by the
// GEOS topology library.
package overlay

import (
	"fmt"
)

// Version gives the version number of this library.
const Version = "0.1.0"

// A Relation is one of the five boolean-style spatial relations an
// overlay can compute. It is fixed for a whole overlay invocation.
type Relation string

// The recognized overlay relations.
const (
	Intersection        Relation = "intersection"
	Union               Relation = "union"
	Identity            Relation = "identity"
	SymmetricDifference Relation = "symmetric_difference"
	Difference          Relation = "difference" // aka erase
)

// Relations lists the recognized overlay relations.
var Relations = []Relation{
	Intersection,
	Union,
	Identity,
	SymmetricDifference,
	Difference,
}

func (r Relation) valid() bool {
	for _, rr := range Relations {
		if r == rr {
			return true
		}
	}
	return false
}

// GeometryColumn is the geometry column name of every output
// collection.
const GeometryColumn = "geometry"

// An Overlay computes polygon overlays between pairs of feature
// layers. The zero value is not usable: Kernel must be set.
//
// An Overlay holds no state between invocations and its methods may be
// called concurrently.
type Overlay struct {
	// Kernel supplies the geometry primitives the overlay delegates
	// to.
	Kernel Kernel

	// Processors is the number of goroutines used to classify faces.
	// Zero means runtime.GOMAXPROCS(0); one means serial
	// classification. Classification results are independent of this
	// setting.
	Processors int

	// SpatialIndex, if true, builds an in-memory r-tree over each
	// input layer and uses it to prune containment candidates during
	// face classification. The first-match-in-input-order semantics of
	// classification are preserved exactly; only the amount of work
	// changes.
	SpatialIndex bool
}

// Overlay computes the overlay of the two layers under the given
// relation. The output collection's schema is the concatenation of
// layer1's and layer2's non-geometry columns, in that order, with the
// face geometries under the column name "geometry". Duplicate column
// names between the layers are preserved as-is. Output features appear
// in face-recovery order with a fresh 0..n-1 index.
//
// Overlay returns either a complete output collection or an error;
// there is no partial output. It fails with InvalidRelationError
// before touching the inputs when how is not a recognized relation,
// with UnsupportedGeometryTypeError when an input feature's geometry
// is not polygonal, and with UnionError when both boundary-merge
// strategies fail. Invalid input polygons are repaired silently and
// never cause an error; the inputs themselves are not modified.
func (o *Overlay) Overlay(layer1, layer2 *FeatureCollection, how Relation) (*FeatureCollection, error) {
	if !how.valid() {
		return nil, InvalidRelationError{How: how}
	}
	if o.Kernel == nil {
		return nil, fmt.Errorf("overlay: the Kernel field must be set")
	}

	rings1, err := extractRings(o.Kernel, layer1)
	if err != nil {
		return nil, err
	}
	rings2, err := extractRings(o.Kernel, layer2)
	if err != nil {
		return nil, err
	}

	network, err := o.buildArrangement(rings1, rings2)
	if err != nil {
		return nil, err
	}

	faces, err := o.recoverFaces(network)
	if err != nil {
		return nil, err
	}

	cands, err := o.classify(faces, layer1, layer2, how)
	if err != nil {
		return nil, err
	}

	return assemble(layer1, layer2, cands), nil
}
