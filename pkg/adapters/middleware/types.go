// Package middleware provides composable wrappers around a ports.Catalog,
// adding behavior such as logging or metadata scrubbing without touching
// the underlying adapter.
package middleware

import "github.com/montage-edit/montage/pkg/ports"

// Middleware allows wrapping a Catalog to add behavior.
type Middleware func(ports.Catalog) ports.Catalog

// Chain applies middlewares to a catalog in order, so the first middleware
// listed is the outermost wrapper.
func Chain(catalog ports.Catalog, mws ...Middleware) ports.Catalog {
	for i := len(mws) - 1; i >= 0; i-- {
		catalog = mws[i](catalog)
	}
	return catalog
}
