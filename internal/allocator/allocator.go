package allocator

import (
	"fmt"
	"maps"
	"slices"

	"github.com/eugenenazirov/bouquets/internal/bouquet"
)

type greedyAllocator struct{}

// New creates an Allocator that repeatedly commits the cheapest producible
// bouquet across all designs until stock runs out or nothing is feasible.
func New() Allocator {
	return &greedyAllocator{}
}

func (a *greedyAllocator) Allocate(designs []bouquet.Design, stock *bouquet.Inventory) (Result, error) {
	var bouquets []bouquet.Bouquet

	for stock.Total() > 0 {
		best, ok := cheapest(designs, stock)
		if !ok {
			break
		}
		if err := commit(stock, best); err != nil {
			return Result{Bouquets: bouquets, Remaining: stock.Total()}, err
		}
		bouquets = append(bouquets, best)
	}

	return Result{Bouquets: bouquets, Remaining: stock.Total()}, nil
}

// cheapest trials every design against its own snapshot of stock. Strict
// less-than keeps the first design on equal cost.
func cheapest(designs []bouquet.Design, stock *bouquet.Inventory) (bouquet.Bouquet, bool) {
	var (
		best     bouquet.Bouquet
		bestCost = Infeasible
		found    bool
	)
	for _, d := range designs {
		candidate, cost := Fill(d, stock.Clone())
		if cost < bestCost {
			best, bestCost, found = candidate, cost, true
		}
	}
	return best, found
}

// commit removes b from stock. Every species is checked first so a failed
// commit leaves stock untouched.
func commit(stock *bouquet.Inventory, b bouquet.Bouquet) error {
	species := slices.Sorted(maps.Keys(b.Composition))
	for _, s := range species {
		if need, have := b.Composition[s], stock.Amount(s); need > have {
			return fmt.Errorf("commit %s: %w: need %d of %s, have %d", b.Design, bouquet.ErrInsufficientStock, need, s, have)
		}
	}
	for _, s := range species {
		if err := stock.Decrement(s, b.Composition[s]); err != nil {
			return fmt.Errorf("commit %s: %w", b.Design, err)
		}
	}
	return nil
}
