package bouquet

import (
	"fmt"
	"sort"
)

// Inventory is a ledger of flower units keyed by species. Absent and zero
// counts are equivalent; keys are dropped when they reach zero.
//
// Inventory is not safe for concurrent use. Trials work on a Clone.
type Inventory struct {
	counts map[string]int
	total  int
}

// NewInventory creates an empty ledger.
func NewInventory() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

// InventoryFrom builds a ledger from species counts. Non-positive counts are ignored.
func InventoryFrom(counts map[string]int) *Inventory {
	inv := NewInventory()
	for s, n := range counts {
		inv.Add(s, n)
	}
	return inv
}

// Add stocks n units of species.
func (inv *Inventory) Add(species string, n int) {
	if n <= 0 {
		return
	}
	inv.counts[species] += n
	inv.total += n
}

// Amount returns the current count of species, 0 if absent.
func (inv *Inventory) Amount(species string) int {
	return inv.counts[species]
}

// Total returns the number of units across all species.
func (inv *Inventory) Total() int {
	return inv.total
}

// Decrement removes n units of species. It fails with ErrInsufficientStock
// instead of letting the count go negative.
func (inv *Inventory) Decrement(species string, n int) error {
	if n < 0 {
		return fmt.Errorf("decrement %s by negative amount %d", species, n)
	}
	if n == 0 {
		return nil
	}
	have := inv.counts[species]
	if have < n {
		return fmt.Errorf("%w: need %d of %s, have %d", ErrInsufficientStock, n, species, have)
	}
	if have == n {
		delete(inv.counts, species)
	} else {
		inv.counts[species] = have - n
	}
	inv.total -= n
	return nil
}

// MostAbundant returns the species with the largest count. Ties go to the
// lexically smallest species. It returns false for an empty ledger.
func (inv *Inventory) MostAbundant() (string, bool) {
	best, bestCount := "", 0
	for s, n := range inv.counts {
		if n > bestCount || (n == bestCount && n > 0 && s < best) {
			best, bestCount = s, n
		}
	}
	return best, bestCount > 0
}

// Clone returns an independent deep copy.
func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{
		counts: make(map[string]int, len(inv.counts)),
		total:  inv.total,
	}
	for s, n := range inv.counts {
		out.counts[s] = n
	}
	return out
}

// Species lists stocked species in ascending order.
func (inv *Inventory) Species() []string {
	out := make([]string, 0, len(inv.counts))
	for s := range inv.counts {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Counts returns a copy of the species counts.
func (inv *Inventory) Counts() map[string]int {
	out := make(map[string]int, len(inv.counts))
	for s, n := range inv.counts {
		out[s] = n
	}
	return out
}

func (inv *Inventory) String() string {
	return fmt.Sprint(inv.counts)
}
