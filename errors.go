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

// InvalidRelationError is returned when the requested relation is not
// one of the five recognized overlay relations. It is returned before
// any processing of the input layers begins.
type InvalidRelationError struct {
	How Relation
}

func (e InvalidRelationError) Error() string {
	return fmt.Sprintf("overlay: relation %q is not one of %v", string(e.How), Relations)
}

// UnsupportedGeometryTypeError is returned when an input feature's
// geometry is not a polygon or multi-polygon. No partial output is
// produced.
type UnsupportedGeometryTypeError struct {
	Geom geom.Geom
}

func (e UnsupportedGeometryTypeError) Error() string {
	return fmt.Sprintf("overlay: overlay only takes layers with polygon or multi-polygon geometries; got %T", e.Geom)
}

// UnionError is returned when merging the layer boundaries fails on
// both the fast and the robust union paths. A failure of the fast path
// alone is never surfaced; the robust fallback is substituted silently.
type UnionError struct {
	Fast, Robust error
}

func (e UnionError) Error() string {
	return fmt.Sprintf("overlay: merging layer boundaries: fast union: %v; robust union: %v", e.Fast, e.Robust)
}

func (e UnionError) Unwrap() error { return e.Robust }
