package eeprom

import (
	"fmt"
	"strings"
)

// Part describes the geometry of a 25xx device.
type Part struct {
	// Name is the part number with the voltage family replaced by "xx"
	Name string

	// Size is the address space in bytes
	Size int

	// PageSize is the write page in bytes (a power of two)
	PageSize int
}

// Supported parts. The A/B suffix distinguishes page sizes on the smaller
// densities.
var (
	Part25xx080A = Part{Name: "25xx080A", Size: 1024, PageSize: 16}
	Part25xx080B = Part{Name: "25xx080B", Size: 1024, PageSize: 32}
	Part25xx160A = Part{Name: "25xx160A", Size: 2048, PageSize: 16}
	Part25xx160B = Part{Name: "25xx160B", Size: 2048, PageSize: 32}
	Part25xx320A = Part{Name: "25xx320A", Size: 4096, PageSize: 32}
	Part25xx640A = Part{Name: "25xx640A", Size: 8192, PageSize: 32}
	Part25xx128  = Part{Name: "25xx128", Size: 16384, PageSize: 64}
	Part25xx256  = Part{Name: "25xx256", Size: 32768, PageSize: 64}
)

var knownParts = []Part{
	Part25xx080A, Part25xx080B,
	Part25xx160A, Part25xx160B,
	Part25xx320A, Part25xx640A,
	Part25xx128, Part25xx256,
}

// maxAddressSpace is the reach of the 16-bit address field.
const maxAddressSpace = 1 << 16

// LookupPart finds a part by number. The voltage family prefix is ignored, so
// "25LC320A", "25AA320A" and "25xx320" all resolve to Part25xx320A.
func LookupPart(name string) (Part, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, family := range []string{"25LC", "25AA", "25XX"} {
		if strings.HasPrefix(key, family) {
			key = "25XX" + strings.TrimPrefix(key, family)
			break
		}
	}

	for _, candidate := range []string{key, key + "A"} {
		for _, p := range knownParts {
			if strings.ToUpper(p.Name) == candidate {
				return p, true
			}
		}
	}
	return Part{}, false
}

// Parts returns every supported part.
func Parts() []Part {
	out := make([]Part, len(knownParts))
	copy(out, knownParts)
	return out
}

func (p Part) validate() error {
	if p.PageSize <= 0 || p.PageSize&(p.PageSize-1) != 0 {
		return fmt.Errorf("page size must be a power of two, got %d", p.PageSize)
	}
	if p.Size <= 0 || p.Size > maxAddressSpace {
		return fmt.Errorf("size must be between 1 and %d bytes, got %d", maxAddressSpace, p.Size)
	}
	if p.Size%p.PageSize != 0 {
		return fmt.Errorf("size %d is not a multiple of page size %d", p.Size, p.PageSize)
	}
	return nil
}

func (p Part) String() string {
	name := p.Name
	if name == "" {
		name = "custom"
	}
	return fmt.Sprintf("%s (%d bytes, %d-byte pages)", name, p.Size, p.PageSize)
}
