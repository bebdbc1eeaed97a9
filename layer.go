package twisty

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Move names the face a layer slab is measured from.
type Move uint8

const (
	MoveTop Move = iota
	MoveBottom
	MoveLeft
	MoveRight
	MoveFront
	MoveBack
	MoveNone
)

// numFaces is the number of selectable faces (every Move except MoveNone).
const numFaces = 6

var moveNames = [...]string{"top", "bottom", "left", "right", "front", "back", "none"}

// MoveFromIndex maps 0..5 to the six faces; anything else is MoveNone.
func MoveFromIndex(i int) Move {
	if i < 0 || i >= numFaces {
		return MoveNone
	}
	return Move(i)
}

// ParseMove parses a face name such as "top" (case-insensitive).
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range moveNames {
		if name == s {
			return Move(i), nil
		}
	}
	return MoveNone, fmt.Errorf("twisty: unknown move %q", s)
}

func (m Move) String() string {
	if int(m) < len(moveNames) {
		return moveNames[m]
	}
	return fmt.Sprintf("Move(%d)", uint8(m))
}

// Axis returns the rotation axis for the move. Top/Bottom turn about the
// vertical Z axis, Left/Right about X, Front/Back about Y. MoveNone has no axis.
func (m Move) Axis() mgl32.Vec3 {
	switch m {
	case MoveTop, MoveBottom:
		return mgl32.Vec3{0, 0, 1}
	case MoveLeft, MoveRight:
		return mgl32.Vec3{1, 0, 0}
	case MoveFront, MoveBack:
		return mgl32.Vec3{0, 1, 0}
	default:
		return mgl32.Vec3{}
	}
}

// LayerSelector maps a face and a depth to a world-space inclusion test over
// piece translations. Pieces sit at Spacing*(x, y, z) for integer coordinates
// in [-Span, Span].
type LayerSelector struct {
	Spacing float32
	Span    int
}

// RandomMove picks one of the six faces uniformly.
func (s LayerSelector) RandomMove(rng *rand.Rand) Move {
	return MoveFromIndex(rng.IntN(numFaces))
}

// RandomDepth picks a depth uniformly from [1, 2*Span). A span of 0 has no
// valid depth and yields 0, which selects nothing.
func (s LayerSelector) RandomDepth(rng *rand.Rand) int {
	hi := 2 * s.Span
	if hi <= 1 {
		return 0
	}
	return 1 + rng.IntN(hi-1)
}

// DepthWorld converts an integer depth to a world distance (depth * d / 2).
func (s LayerSelector) DepthWorld(depth int) float32 {
	return float32(depth) * s.Spacing * 0.5
}

// Predicate returns the inclusion test for a slab measured inward from the
// named face. A piece is included when (Span*d - signed coordinate) is below
// the world depth, where the coordinate is taken along the face's axis and
// signed toward the face.
//
// Grid layers are a whole spacing apart and the slab edge falls either on a
// layer or halfway between two, so the limit is pulled in by a quarter
// spacing. Pieces that drifted off the grid through repeated commits then
// still land on the same side of the edge as their layer.
func (s LayerSelector) Predicate(m Move, depth int) func(p mgl32.Vec3) bool {
	extent := float32(s.Span) * s.Spacing
	limit := s.DepthWorld(depth) - s.Spacing/4
	switch m {
	case MoveTop:
		return func(p mgl32.Vec3) bool { return extent-p.Z() < limit }
	case MoveBottom:
		return func(p mgl32.Vec3) bool { return extent+p.Z() < limit }
	case MoveLeft:
		return func(p mgl32.Vec3) bool { return extent+p.X() < limit }
	case MoveRight:
		return func(p mgl32.Vec3) bool { return extent-p.X() < limit }
	case MoveFront:
		return func(p mgl32.Vec3) bool { return extent-p.Y() < limit }
	case MoveBack:
		return func(p mgl32.Vec3) bool { return extent+p.Y() < limit }
	default:
		return func(mgl32.Vec3) bool { return false }
	}
}
