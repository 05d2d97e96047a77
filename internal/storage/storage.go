package storage

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/eugenenazirov/bouquets/internal/bouquet"
)

const maxDesigns = 64

var (
	// ErrInvalidDesigns indicates the provided design tokens violate validation rules.
	ErrInvalidDesigns = errors.New("designs must contain between 1 and 64 well-formed design tokens")
)

var defaultDesigns = []string{"AL10a15b5c30", "AS10a10b25", "BL15b1c21", "BS10b5c16"}

// Storage provides access to the design catalogue used by the allocator.
type Storage interface {
	GetDesigns() ([]string, error)
	SetDesigns(tokens []string) error
}

// MemoryStorage keeps design tokens in-memory and guards access with a RWMutex.
// Token order is kept because it decides ties between equally cheap designs.
type MemoryStorage struct {
	mu      sync.RWMutex
	designs []string
}

// NewMemoryStorage initialises storage with a copy of the default designs.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		designs: DefaultDesigns(),
	}
}

// DefaultDesigns returns a copy of the default design tokens.
func DefaultDesigns() []string {
	return slices.Clone(defaultDesigns)
}

// GetDesigns returns a defensive copy of the current design tokens.
func (s *MemoryStorage) GetDesigns() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.designs), nil
}

// SetDesigns validates, deduplicates, and stores the provided design tokens.
func (s *MemoryStorage) SetDesigns(tokens []string) error {
	normalized, err := normalizeDesigns(tokens)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.designs = normalized
	s.mu.Unlock()

	return nil
}

// normalizeDesigns drops repeated tokens, keeping first occurrence order.
func normalizeDesigns(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, ErrInvalidDesigns
	}

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		if _, err := bouquet.ParseDesign(token); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDesigns, err)
		}
		seen[token] = struct{}{}
		out = append(out, token)
		if len(out) > maxDesigns {
			return nil, ErrInvalidDesigns
		}
	}
	return out, nil
}
