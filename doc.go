/*
Package casetree is an editing core for engineering-simulation case files.

A case is an XML tree of physical-model switches and boundary-condition parameters. The library keeps that tree
in memory, guards every write with value constraints, exposes typed views over boundary zones and records
whole-case snapshots so that any edit can be undone.

# Concept

The Editor binds one case document to its undo history and to a store. Reads through the typed views fill in
defaults on the fly; writes validate first and are bracketed by Edit, which takes the undo snapshot and rolls
the case back if the edit fails halfway.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/casetree"
		"github.com/aretw0/casetree/pkg/boundary"
		"github.com/aretw0/casetree/pkg/casedoc"
		"github.com/aretw0/casetree/pkg/domain"
	)

	func main() {
		ctx := context.Background()
		ed := casetree.New()

		nav := domain.NavState{Section: "Boundary conditions", Page: 0}
		err := ed.Edit("wall", nav, func(doc *casedoc.Document) error {
			w, err := boundary.NewWall(doc, "mur")
			if err != nil {
				return err
			}
			return w.SetRoughness(0.02)
		})
		if err != nil {
			log.Fatal(err)
		}

		if _, err := ed.Undo(); err != nil {
			log.Fatal(err)
		}

		if err := ed.SaveAs(ctx, "duct"); err != nil {
			log.Fatal(err)
		}
	}
*/
package casetree
