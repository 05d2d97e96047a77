package bouquet

// Size is the flower category a design or flower unit belongs to.
type Size byte

const (
	Large Size = 'L'
	Small Size = 'S'
)

// ParseSize maps a category letter onto a Size.
func ParseSize(c byte) (Size, bool) {
	switch Size(c) {
	case Large, Small:
		return Size(c), true
	}
	return 0, false
}

func (s Size) String() string {
	switch s {
	case Large:
		return "large"
	case Small:
		return "small"
	}
	return "unknown"
}

// Requirement is one explicitly designated species of a design.
type Requirement struct {
	Species string
	Count   int
}

// Design is an immutable bouquet template.
// TotalSlots is never below the sum of the required counts; the difference is
// filled with whichever species is most abundant at fill time.
type Design struct {
	Name       string
	Size       Size
	Required   []Requirement
	TotalSlots int
}

// RequiredTotal returns the number of slots bound to a specific species.
func (d Design) RequiredTotal() int {
	total := 0
	for _, r := range d.Required {
		total += r.Count
	}
	return total
}

// FillerSlots returns the number of slots left for the most abundant species.
func (d Design) FillerSlots() int {
	return d.TotalSlots - d.RequiredTotal()
}

// Bouquet is a produced bouquet: the design it came from and the species
// counts it consumed.
type Bouquet struct {
	Design      string
	Composition map[string]int
}

// Flowers returns the number of units in the bouquet.
func (b Bouquet) Flowers() int {
	total := 0
	for _, n := range b.Composition {
		total += n
	}
	return total
}

// Empty reports whether the bouquet holds no flowers.
func (b Bouquet) Empty() bool {
	return len(b.Composition) == 0
}
