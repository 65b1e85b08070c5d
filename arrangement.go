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

// buildArrangement merges the boundary rings of both layers into a
// single noded line network. The fast union is tried first; if it
// fails (numerical failure is the documented real-world cause) the
// slower pairwise union is substituted silently. The operation as a
// whole fails only when both strategies fail, and the resulting
// UnionError carries both causes.
func (o *Overlay) buildArrangement(rings1, rings2 geom.MultiLineString) (Network, error) {
	network, fastErr := o.Kernel.FastUnion(rings1, rings2)
	if fastErr == nil {
		return network, nil
	}
	network, robustErr := o.Kernel.RobustUnion(rings1, rings2)
	if robustErr != nil {
		return nil, UnionError{Fast: fastErr, Robust: robustErr}
	}
	return network, nil
}
