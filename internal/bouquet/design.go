package bouquet

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	countPattern   = regexp.MustCompile(`[0-9]+`)
	speciesPattern = regexp.MustCompile(`[a-z]+`)
)

// ParseDesign turns a token such as "AL10a15b25" into a Design.
//
// Digit runs and lowercase letter runs are scanned independently and zipped by
// index. The final digit run has no species and is the total slot count.
func ParseDesign(token string) (Design, error) {
	if len(token) < 2 {
		return Design{}, fmt.Errorf("%w: %q is too short", ErrMalformedDesign, token)
	}
	size, ok := ParseSize(token[1])
	if !ok {
		return Design{}, fmt.Errorf("%w: %q has unknown category %q", ErrMalformedDesign, token, token[1])
	}

	rawCounts := countPattern.FindAllString(token, -1)
	species := speciesPattern.FindAllString(token, -1)
	if len(rawCounts) == 0 {
		return Design{}, fmt.Errorf("%w: %q has no slot count", ErrMalformedDesign, token)
	}
	if len(rawCounts) != len(species)+1 {
		return Design{}, fmt.Errorf("%w: %q has %d counts for %d species", ErrMalformedDesign, token, len(rawCounts), len(species))
	}

	counts := make([]int, len(rawCounts))
	for i, raw := range rawCounts {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Design{}, fmt.Errorf("%w: %q count %q: %v", ErrMalformedDesign, token, raw, err)
		}
		counts[i] = n
	}

	design := Design{
		Name:       token[:2],
		Size:       size,
		Required:   make([]Requirement, 0, len(species)),
		TotalSlots: counts[len(counts)-1],
	}
	seen := make(map[string]struct{}, len(species))
	for i, s := range species {
		if _, dup := seen[s]; dup {
			return Design{}, fmt.Errorf("%w: %q lists species %q twice", ErrMalformedDesign, token, s)
		}
		seen[s] = struct{}{}
		design.Required = append(design.Required, Requirement{Species: s, Count: counts[i]})
	}

	if design.TotalSlots <= 0 {
		return Design{}, fmt.Errorf("%w: %q has no slots", ErrMalformedDesign, token)
	}
	if required := design.RequiredTotal(); design.TotalSlots < required {
		return Design{}, fmt.Errorf("%w: %q requires %d flowers but holds %d", ErrMalformedDesign, token, required, design.TotalSlots)
	}

	return design, nil
}

// ParseDesigns parses every token, stopping at the first failure.
func ParseDesigns(tokens []string) ([]Design, error) {
	designs := make([]Design, 0, len(tokens))
	for _, token := range tokens {
		d, err := ParseDesign(token)
		if err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	return designs, nil
}
