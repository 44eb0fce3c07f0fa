package floating

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownInteraction reports an interaction zone outside the four corners.
var ErrUnknownInteraction = errors.New("floating: unknown interaction")

// Interaction selects one of the four disturbance zones, each centered at
// ±ZoneOffset of the surface extent from the anchor.
type Interaction int

const (
	SouthWest Interaction = iota
	SouthEast
	NorthWest
	NorthEast
)

var interactionNames = [...]string{"sw", "se", "nw", "ne"}

// Interactions returns every zone in declaration order.
func Interactions() []Interaction {
	return []Interaction{SouthWest, SouthEast, NorthWest, NorthEast}
}

func (i Interaction) valid() bool { return i >= SouthWest && i <= NorthEast }

func (i Interaction) String() string {
	if !i.valid() {
		return fmt.Sprintf("Interaction(%d)", int(i))
	}
	return interactionNames[i]
}

// signs returns the direction of the zone center along x and y.
func (i Interaction) signs() (float64, float64) {
	sx, sy := -1.0, -1.0
	if i == SouthEast || i == NorthEast {
		sx = 1
	}
	if i == NorthWest || i == NorthEast {
		sy = 1
	}
	return sx, sy
}

// ParseInteraction accepts the short names (sw, se, nw, ne) and the long
// forms (southwest, south-west, ...), case-insensitively.
func ParseInteraction(s string) (Interaction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", "south", "s", "north", "n", "west", "w", "east", "e").Replace(key)
	for i, name := range interactionNames {
		if key == name {
			return Interaction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInteraction, s)
}

func (i Interaction) MarshalText() ([]byte, error) {
	if !i.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInteraction, int(i))
	}
	return []byte(i.String()), nil
}

func (i *Interaction) UnmarshalText(b []byte) error {
	v, err := ParseInteraction(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
