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
	"runtime"
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// A face is one polygon recovered from the merged boundary
// arrangement. It carries no attributes until classified. The id is
// the face's position in recovery order and is used for bookkeeping
// only; it is not persisted in the output.
type face struct {
	id int
	geom.Polygon
}

// recoverFaces polygonizes the merged network and buffers the
// resulting single-pass face sequence into recovery order, assigning
// sequential face ids on consumption.
func (o *Overlay) recoverFaces(network Network) ([]face, error) {
	polys, err := o.Kernel.Polygonize(network)
	if err != nil {
		return nil, fmt.Errorf("overlay: polygonizing the boundary arrangement: %w", err)
	}
	faces := make([]face, len(polys))
	for i, p := range polys {
		faces[i] = face{id: i, Polygon: p}
	}
	return faces, nil
}

// A candidate is an included face together with the attribute records
// contributed by each layer (null-filled for a non-contributing
// layer).
type candidate struct {
	face
	values1, values2 []interface{}
}

// A classifyContext is a read-only view of the two input layers that
// face classification consults. It is shared by all classification
// goroutines without locking; nothing in it is mutated after
// construction.
type classifyContext struct {
	kernel         Kernel
	how            Relation
	layer1, layer2 *FeatureCollection
	index1, index2 *rtree.Rtree // non-nil only when index pruning is on
}

// A featureEntry places a feature's geometry in an r-tree together
// with its position in the input collection, so that index hits can
// reproduce the first-match-in-input-order tie-break. The embedded
// geometry satisfies the index's entry interface.
type featureEntry struct {
	geom.Geom
	f   *Feature
	pos int
}

func buildIndex(fc *FeatureCollection) *rtree.Rtree {
	t := rtree.NewTree(25, 50)
	for i, f := range fc.Features {
		t.Insert(&featureEntry{Geom: f.Geom, f: f, pos: i})
	}
	return t
}

// classify determines, for every recovered face, which layers contain
// its representative interior point and which faces the requested
// relation includes. Faces are classified concurrently across
// o.Processors goroutines; results are written into a slice indexed by
// face id, so the returned candidates are in face-recovery order
// regardless of execution order.
func (o *Overlay) classify(faces []face, layer1, layer2 *FeatureCollection, how Relation) ([]*candidate, error) {
	ctx := &classifyContext{
		kernel: o.Kernel,
		how:    how,
		layer1: layer1,
		layer2: layer2,
	}
	if o.SpatialIndex {
		ctx.index1 = buildIndex(layer1)
		ctx.index2 = buildIndex(layer2)
	}

	nprocs := o.Processors
	if nprocs < 1 {
		nprocs = runtime.GOMAXPROCS(0)
	}

	results := make([]*candidate, len(faces))
	errs := make([]error, nprocs)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ii := pp; ii < len(faces); ii += nprocs {
				c, err := ctx.classifyFace(faces[ii])
				if err != nil {
					errs[pp] = err
					return
				}
				results[ii] = c
			}
		}(pp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	cands := make([]*candidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			cands = append(cands, c)
		}
	}
	return cands, nil
}

// classifyFace probes both layers with f's representative interior
// point and applies the relation's inclusion rule. It returns nil when
// the face is excluded.
func (ctx *classifyContext) classifyFace(f face) (*candidate, error) {
	pt, err := ctx.kernel.RepresentativePoint(f.Polygon)
	if err != nil {
		return nil, fmt.Errorf("overlay: locating an interior point of face %d: %w", f.id, err)
	}

	values1, hit1, err := ctx.firstHit(ctx.layer1, ctx.index1, pt)
	if err != nil {
		return nil, err
	}
	values2, hit2, err := ctx.firstHit(ctx.layer2, ctx.index2, pt)
	if err != nil {
		return nil, err
	}

	if !include(ctx.how, hit1, hit2) {
		return nil, nil
	}
	if !hit1 {
		values1 = ctx.layer1.nullRecord()
	}
	if !hit2 {
		values2 = ctx.layer2.nullRecord()
	}
	return &candidate{face: f, values1: values1, values2: values2}, nil
}

// firstHit returns the attribute record of the first feature in input
// order whose geometry contains pt, or hit == false when no feature
// does. With an index, the bounding-box candidates are filtered by the
// kernel's containment test and the lowest input position wins, which
// is equivalent to the linear scan's first match.
func (ctx *classifyContext) firstHit(fc *FeatureCollection, index *rtree.Rtree, pt geom.Point) (values []interface{}, hit bool, err error) {
	if index != nil {
		best := -1
		for _, item := range index.SearchIntersect(pt.Bounds()) {
			e := item.(*featureEntry)
			if best >= 0 && e.pos >= best {
				continue
			}
			in, err := ctx.kernel.Contains(e.f.Geom.(geom.Polygonal), pt)
			if err != nil {
				return nil, false, fmt.Errorf("overlay: testing face containment: %w", err)
			}
			if in {
				best = e.pos
			}
		}
		if best >= 0 {
			return fc.Features[best].Values, true, nil
		}
		return nil, false, nil
	}
	for _, f := range fc.Features {
		in, err := ctx.kernel.Contains(f.Geom.(geom.Polygonal), pt)
		if err != nil {
			return nil, false, fmt.Errorf("overlay: testing face containment: %w", err)
		}
		if in {
			return f.Values, true, nil
		}
	}
	return nil, false, nil
}

// include applies the overlay decision table: it reports whether a
// face whose representative point is contained by some feature of
// layer1 (hit1) and/or layer2 (hit2) belongs in the output under the
// given relation. It is a pure function of its arguments.
//
//	relation              include face when
//	intersection          hit1 AND hit2
//	union                 hit1 OR hit2
//	identity              hit1
//	symmetric_difference  NOT (hit1 AND hit2)
//	difference            hit1 AND NOT hit2
func include(how Relation, hit1, hit2 bool) bool {
	switch how {
	case Intersection:
		return hit1 && hit2
	case Union:
		return hit1 || hit2
	case Identity:
		return hit1
	case SymmetricDifference:
		return !(hit1 && hit2)
	case Difference:
		return hit1 && !hit2
	}
	return false
}
