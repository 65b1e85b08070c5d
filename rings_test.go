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
	"errors"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestExtractRings(t *testing.T) {
	// A polygon with a hole followed by a two-part multi-polygon:
	// rings must come out flat, exterior before interiors, in
	// collection order.
	holed := geom.Polygon{
		{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}},
	}
	multi := geom.MultiPolygon{rect(5, 5, 6, 6), rect(7, 7, 8, 8)}

	fc := NewFeatureCollection("geometry", "name")
	if err := fc.Add(holed, "a"); err != nil {
		t.Fatal(err)
	}
	if err := fc.Add(multi, "b"); err != nil {
		t.Fatal(err)
	}

	k := newFakeKernel()
	rings, err := extractRings(k, fc)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.MultiLineString{
		closeRing(holed[0]),
		closeRing(holed[1]),
		closeRing(rect(5, 5, 6, 6)[0]),
		closeRing(rect(7, 7, 8, 8)[0]),
	}
	if !reflect.DeepEqual(rings, want) {
		t.Errorf("have %v, want %v", rings, want)
	}
	for _, r := range rings {
		if !r[0].Equals(r[len(r)-1]) {
			t.Errorf("ring %v is not closed", r)
		}
	}

	// Extraction of unchanged valid input is idempotent.
	again, err := extractRings(k, fc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rings, again) {
		t.Errorf("second extraction differs: have %v, want %v", again, rings)
	}
}

func TestExtractRingsUnsupportedGeometry(t *testing.T) {
	fc := NewFeatureCollection("geometry", "name")
	if err := fc.Add(geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 1}}, "a"); err != nil {
		t.Fatal(err)
	}
	_, err := extractRings(newFakeKernel(), fc)
	var typeErr UnsupportedGeometryTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("have %v, want an UnsupportedGeometryTypeError", err)
	}
}

// A self-intersecting polygon is repaired silently before extraction,
// and repair does not modify the source collection.
func TestExtractRingsRepairsBowtie(t *testing.T) {
	bowtie := geom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	fixed := geom.Polygon{
		{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 0, Y: 1}},
		{{X: 1, Y: 1}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}},
	}

	fc := NewFeatureCollection("geometry", "name")
	if err := fc.Add(bowtie, "a"); err != nil {
		t.Fatal(err)
	}

	k := newFakeKernel()
	k.invalid[polyKey(bowtie)] = true
	k.repaired[polyKey(bowtie)] = fixed

	rings, err := extractRings(k, fc)
	if err != nil {
		t.Fatal(err)
	}
	if len(rings) != 2 {
		t.Fatalf("have %d rings, want 2", len(rings))
	}
	if k.calls["Repair"] != 1 {
		t.Errorf("Repair called %d times, want 1", k.calls["Repair"])
	}
	if !reflect.DeepEqual(fc.Features[0].Geom, geom.Geom(bowtie)) {
		t.Errorf("source geometry was modified: have %v", fc.Features[0].Geom)
	}
}

func TestCloseRing(t *testing.T) {
	open := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	closed := closeRing(open)
	if len(closed) != 4 || !closed[0].Equals(closed[3]) {
		t.Errorf("have %v, want a closed ring", closed)
	}
	// Closing an already-closed ring changes nothing.
	if again := closeRing(closed); !reflect.DeepEqual(again, closed) {
		t.Errorf("have %v, want %v", again, closed)
	}
	if len(open) != 3 {
		t.Errorf("closeRing modified its input: %v", open)
	}
}
