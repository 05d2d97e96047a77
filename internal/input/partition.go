package input

import (
	"fmt"

	"github.com/eugenenazirov/bouquets/internal/bouquet"
)

// Pool is the designs and flower stock of one size category.
type Pool struct {
	Designs []bouquet.Design
	Stock   *bouquet.Inventory
}

// Batch holds the independent large and small pools of one input.
type Batch struct {
	Large Pool
	Small Pool
}

// NewBatch returns a batch with empty stock in both pools.
func NewBatch() Batch {
	return Batch{
		Large: Pool{Stock: bouquet.NewInventory()},
		Small: Pool{Stock: bouquet.NewInventory()},
	}
}

// Pool returns the pool for size, or nil for an unknown size.
func (b *Batch) Pool(size bouquet.Size) *Pool {
	switch size {
	case bouquet.Large:
		return &b.Large
	case bouquet.Small:
		return &b.Small
	}
	return nil
}

// AddDesign appends d to the pool matching its size.
func (b *Batch) AddDesign(d bouquet.Design) {
	if pool := b.Pool(d.Size); pool != nil {
		pool.Designs = append(pool.Designs, d)
	}
}

// Partition splits input lines into pools. Lines before the first blank line
// are design tokens; every later non-blank line is one flower unit written as
// species letter then category letter. Lines whose category is neither L nor
// S are skipped.
func Partition(lines []string) (Batch, error) {
	batch := NewBatch()
	readingDesigns := true

	for i, line := range lines {
		if line == "" {
			readingDesigns = false
			continue
		}
		if len(line) < 2 {
			return Batch{}, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, i+1, line)
		}
		size, ok := bouquet.ParseSize(line[1])
		if !ok {
			continue
		}

		if readingDesigns {
			design, err := bouquet.ParseDesign(line)
			if err != nil {
				return Batch{}, fmt.Errorf("line %d: %w", i+1, err)
			}
			batch.AddDesign(design)
			continue
		}
		batch.Pool(size).Stock.Add(line[:1], 1)
	}

	return batch, nil
}

// ParseFlowers stocks a batch from flower tokens such as "aL" or "bS".
func ParseFlowers(batch *Batch, tokens []string) error {
	for i, token := range tokens {
		if len(token) != 2 || token[0] < 'a' || token[0] > 'z' {
			return fmt.Errorf("%w: flower %d: %q", ErrMalformedLine, i+1, token)
		}
		size, ok := bouquet.ParseSize(token[1])
		if !ok {
			return fmt.Errorf("%w: flower %d: unknown category in %q", ErrMalformedLine, i+1, token)
		}
		batch.Pool(size).Stock.Add(token[:1], 1)
	}
	return nil
}
