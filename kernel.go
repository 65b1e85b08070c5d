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

import "github.com/ctessum/geom"

// A Network is the planar line arrangement produced by unioning the
// boundary rings of both input layers. It is an opaque handle: it is
// produced by a Kernel's union methods and consumed, once, by the same
// Kernel's Polygonize method. It has no lifecycle beyond that hand-off.
type Network interface{}

// A Kernel supplies the 2-D geometry and topology primitives that the
// overlay algorithm delegates to. The overlay core never implements
// geometry operations itself; every primitive below is expected to be
// backed by a fully capable geometry library (see package geoskernel
// for the GEOS-backed implementation).
//
// Point-in-polygon semantics near shared boundaries are whatever the
// kernel provides; the overlay does not impose a tie-break of its own.
type Kernel interface {
	// IsValid reports whether p is topologically valid.
	IsValid(p geom.Polygon) (bool, error)

	// Repair returns a valid version of an invalid polygon, fixing
	// self-intersections and other topology defects. The result
	// is used only for boundary-ring extraction, so a repair that
	// splits p into several parts may return all of the parts' rings
	// in a single Polygon value.
	Repair(p geom.Polygon) (geom.Polygon, error)

	// FastUnion merges the two ring sets into a single noded line
	// network. It is permitted to fail numerically; callers must treat
	// an error as a signal to retry with RobustUnion rather than as a
	// failure of the overlay.
	FastUnion(a, b geom.MultiLineString) (Network, error)

	// RobustUnion is the slower fallback for FastUnion. It is assumed
	// not to fail on inputs that merely break the fast path.
	RobustUnion(a, b geom.MultiLineString) (Network, error)

	// Polygonize recovers the polygonal faces enclosed by the noded
	// network. It consumes the network; the handle must not be reused.
	Polygonize(n Network) ([]geom.Polygon, error)

	// RepresentativePoint returns a point guaranteed to lie in the
	// interior of p.
	RepresentativePoint(p geom.Polygon) (geom.Point, error)

	// Contains reports whether pt is inside p, under the kernel's own
	// boundary semantics.
	Contains(p geom.Polygonal, pt geom.Point) (bool, error)
}
