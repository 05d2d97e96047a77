package allocator

import (
	"math"

	"github.com/eugenenazirov/bouquets/internal/bouquet"
)

// Infeasible is the cost reported for a design that cannot be completed.
var Infeasible = math.Inf(1)

// Fill builds one bouquet for design out of snapshot, consuming units one at a
// time and charging 1 - amount/total for each unit before it is taken. Scarce
// species cost close to 1, abundant ones close to 0.
//
// Fill mutates snapshot; callers pass a Clone of the real ledger. When the
// design cannot be completed it returns an empty bouquet and Infeasible.
func Fill(design bouquet.Design, snapshot *bouquet.Inventory) (bouquet.Bouquet, float64) {
	if design.TotalSlots <= 0 {
		return bouquet.Bouquet{}, Infeasible
	}

	composition := make(map[string]int, len(design.Required)+1)
	cost := 0.0
	remaining := design.TotalSlots

	for _, req := range design.Required {
		if snapshot.Amount(req.Species) < req.Count || snapshot.Total() <= 0 {
			return bouquet.Bouquet{}, Infeasible
		}
		for i := 0; i < req.Count; i++ {
			cost += take(snapshot, req.Species)
			composition[req.Species]++
			remaining--
		}
	}

	for ; remaining > 0; remaining-- {
		species, ok := snapshot.MostAbundant()
		if !ok || snapshot.Total() <= 0 {
			return bouquet.Bouquet{}, Infeasible
		}
		cost += take(snapshot, species)
		composition[species]++
	}

	return bouquet.Bouquet{Design: design.Name, Composition: composition}, cost
}

// take charges and removes one unit of species. The caller has checked stock.
func take(snapshot *bouquet.Inventory, species string) float64 {
	charge := 1.0 - float64(snapshot.Amount(species))/float64(snapshot.Total())
	_ = snapshot.Decrement(species, 1)
	return charge
}
