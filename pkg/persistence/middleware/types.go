package middleware

import "github.com/aretw0/casetree/pkg/ports"

// Middleware allows wrapping a CaseStore to add behavior.
type Middleware func(ports.CaseStore) ports.CaseStore

// Chain applies middlewares so that the first one is outermost.
func Chain(store ports.CaseStore, mws ...Middleware) ports.CaseStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
