package allocator

import "github.com/eugenenazirov/bouquets/internal/bouquet"

// Result summarises one allocation run over a single pool.
type Result struct {
	Bouquets  []bouquet.Bouquet
	Remaining int
}

// Allocator describes the behaviour required from a bouquet allocator.
type Allocator interface {
	Allocate(designs []bouquet.Design, stock *bouquet.Inventory) (Result, error)
}
