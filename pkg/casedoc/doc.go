/*
Package casedoc owns one case document: the tree, its identity and its modified flag.

Load is the single recovery boundary of the editor. A rejected document comes back as a *LoadError and the
previously loaded tree stays in place. Save never validates; values are checked when they are written.

The accessors on Document implement the read-default-write-back pattern shared by every typed view:

	v, err := doc.GetFloat(node, "roughness", 0.01, casedoc.NonNegative)

An absent value is replaced by the default and stored, so two reads with no write in between agree.
*/
package casedoc
