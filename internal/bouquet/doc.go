// Package bouquet holds the flower domain: design parsing, the inventory
// ledger of flower units per species, and the canonical bouquet encoding.
package bouquet
