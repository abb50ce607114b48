/*
Package tree implements the mutable, path-addressed document tree that every case accessor reads and writes.

A Node carries a tag, an ordered list of attributes, an ordered list of children and optional text. Nodes are
owned by exactly one parent; Append refuses nodes that are already attached or that would close a cycle, so the
structure is a tree by construction.

# Addressing

Nodes are located relative to a parent by a tag plus zero or more attribute filters:

	bc := root.FindOrCreate("boundary_conditions")
	wall := bc.FindOrCreate("wall", tree.A("label", "mur"))
	vp := wall.FindOrCreate("velocity_pressure")
	vp.SetScalar("roughness", "0.01")

FindOrCreate is idempotent: a second call with the same arguments returns the same node and creates nothing.
A filter on an attribute the candidate does not carry excludes that candidate.

# Serialization

Serialize and Parse convert a tree to and from indented XML. The round trip is exact for tags, attribute order,
child order and text content.
*/
package tree
