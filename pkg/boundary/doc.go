/*
Package boundary provides typed views over the boundary conditions of a case.

Each boundary is stored as boundary_conditions/<tag>[@label=L], where tag is inlet, outlet, wall or symmetry.
Specialized natures (coal inlet, meteo inlet, radiative, mobile and coupled walls) reuse the tag of their base
nature and add children of their own.

Make dispatches on a Nature and returns a view. Views hold no state beyond the node they wrap; build one per
operation:

	b, err := boundary.Make(boundary.Wall, "mur", doc)
	if err != nil {
		return err
	}
	wall := b.(*boundary.WallBoundary)
	err = wall.SetVelocityChoice("on")

Choice attributes gate sibling children: switching a choice removes the children only the previous choice
used and creates the new choice's children with defaults. Setting the current choice again changes nothing.

Coal inlets and radiative walls need their physical model switched on; Make returns a *PreconditionError,
matching domain.ErrPreconditionNotMet, when it is off.
*/
package boundary
