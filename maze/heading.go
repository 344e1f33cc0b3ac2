package maze

import (
	"fmt"
	"strings"
)

var headingNames = [4]string{"up", "right", "down", "left"}

var headingDeltas = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Valid reports whether h is one of the four cardinal headings.
func (h Heading) Valid() bool {
	return h >= Up && h <= Left
}

// String returns the lower-case heading name.
func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("heading(%d)", int(h))
	}
	return headingNames[h]
}

// Delta returns the (dx, dy) step taken when moving one cell along h.
func (h Heading) Delta() (dx, dy int) {
	d := headingDeltas[h]
	return d[0], d[1]
}

// Reverse returns the opposite heading.
func (h Heading) Reverse() Heading {
	return (h + 2) % 4
}

// SensorHeadings maps the agent's left, front and right sensors to absolute headings.
func (h Heading) SensorHeadings() [3]Heading {
	return [3]Heading{(h + 3) % 4, h, (h + 1) % 4}
}

// Rotate applies a clockwise rotation in degrees. Only -90, 0 and +90 are accepted.
func (h Heading) Rotate(deg int) (Heading, error) {
	switch deg {
	case 0:
		return h, nil
	case 90:
		return (h + 1) % 4, nil
	case -90:
		return (h + 3) % 4, nil
	}
	return h, fmt.Errorf("%w: got %d", ErrBadRotation, deg)
}

// RotationBetween returns the rotation that turns from into to.
// Turning around is not a single rotation and yields ErrBadRotation;
// callers reverse instead.
func RotationBetween(from, to Heading) (int, error) {
	switch to {
	case from:
		return 0, nil
	case (from + 1) % 4:
		return 90, nil
	case (from + 3) % 4:
		return -90, nil
	}
	return 0, fmt.Errorf("%w: %s to %s needs a reversal", ErrBadRotation, from, to)
}

// ParseHeading accepts full names ("up") and single-letter forms ("u"), case-insensitive.
func ParseHeading(s string) (Heading, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range headingNames {
		if name == n || (len(name) == 1 && name[0] == n[0]) {
			return Heading(i), nil
		}
	}
	return Up, fmt.Errorf("%w: %q", ErrBadHeading, s)
}
