// SPDX-License-Identifier: MIT

package topology

import "fmt"

// Direction is one of the eight neighbour steps, numbered clockwise from NW.
type Direction uint8

const (
	NW Direction = iota
	N
	NE
	E
	SE
	S
	SW
	W
)

// NumDirections is the size of the 8-neighbourhood.
const NumDirections = 8

// Directions lists every direction in index order.
var Directions = [NumDirections]Direction{NW, N, NE, E, SE, S, SW, W}

var directionNames = [NumDirections]string{"NW", "N", "NE", "E", "SE", "S", "SW", "W"}

// Valid reports whether d is one of NW..W.
func (d Direction) Valid() bool { return d < NumDirections }

// Opposite returns the direction pointing back: N↔S, NE↔SW, E↔W, SE↔NW.
func (d Direction) Opposite() Direction { return (d + 4) % NumDirections }

// String implements fmt.Stringer.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}
