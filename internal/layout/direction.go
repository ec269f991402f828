package layout

import (
	"fmt"
	"strings"
)

// Direction is the way a column moves among its siblings.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// ParseDirection accepts "left" or "right" in any case.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Left, Right:
		return d, nil
	}
	return "", fmt.Errorf("invalid direction %q (want left or right)", s)
}

func (d Direction) offset() int {
	switch d {
	case Left:
		return -1
	case Right:
		return 1
	}
	return 0
}
