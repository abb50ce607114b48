package casetree_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/casetree"
	"github.com/aretw0/casetree/pkg/adapters/memory"
	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/domain"
)

// ExampleEditor_Edit shows an undoable edit of a wall zone.
func ExampleEditor_Edit() {
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
	fmt.Println(ed.History().UndoLabel(), ed.IsModified())

	if _, err := ed.Undo(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("zones after undo:", len(boundary.List(ed.Document())))
	// Output:
	// wall true
	// zones after undo: 0
}

// ExampleOpen round-trips a case through a store.
func ExampleOpen() {
	ctx := context.Background()
	store := memory.NewStore()

	ed := casetree.New(casetree.WithStore(store))
	_ = ed.Edit("outlet", domain.NavState{Page: -1}, func(doc *casedoc.Document) error {
		o, err := boundary.NewOutlet(doc, "sortie")
		if err != nil {
			return err
		}
		return o.SetReferencePressure(2e5)
	})
	if err := ed.SaveAs(ctx, "duct"); err != nil {
		log.Fatal(err)
	}

	again, err := casetree.Open(ctx, "duct", casetree.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range boundary.List(again.Document()) {
		fmt.Println(e.Tag, e.Label)
	}
	// Output:
	// outlet sortie
}
