// Package blocks implements the blocks tile-matching puzzle: a grid of colored
// blocks where clicking a group of two or more same-colored neighbors clears it,
// the remaining blocks fall down and empty columns are squeezed out to the left.
package blocks

import (
	"math/rand"
	"strings"

	"github.com/vovakirdan/blocks/internal/core"
)

// BlockType is the color of a block. BlockNone marks an empty cell.
type BlockType int

const (
	BlockNone BlockType = iota
	BlockRed
	BlockYellow
	BlockGreen
	BlockBlue
	BlockPurple
	blockTypeCount // Sentinel value for iteration
)

// MaxColors is the number of distinct block colors available.
const MaxColors = int(blockTypeCount) - 1

// Valid reports whether t is one of the block colors (not empty, not out of range).
func (t BlockType) Valid() bool {
	return t > BlockNone && t < blockTypeCount
}

// String returns the string representation of a block type.
func (t BlockType) String() string {
	switch t {
	case BlockNone:
		return "none"
	case BlockRed:
		return "red"
	case BlockYellow:
		return "yellow"
	case BlockGreen:
		return "green"
	case BlockBlue:
		return "blue"
	case BlockPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Char returns a single character representation used in tests and debug dumps.
func (t BlockType) Char() rune {
	switch t {
	case BlockRed:
		return 'R'
	case BlockYellow:
		return 'Y'
	case BlockGreen:
		return 'G'
	case BlockBlue:
		return 'B'
	case BlockPurple:
		return 'P'
	default:
		return '.'
	}
}

// Color returns the screen color used to draw the block.
func (t BlockType) Color() core.Color {
	switch t {
	case BlockRed:
		return core.ColorBrightRed
	case BlockYellow:
		return core.ColorBrightYellow
	case BlockGreen:
		return core.ColorGreen
	case BlockBlue:
		return core.ColorBrightBlue
	case BlockPurple:
		return core.ColorMagenta
	default:
		return core.ColorDefault
	}
}

// ParseBlockType converts a character (as produced by Char) to a BlockType.
// Unrecognized characters map to BlockNone.
func ParseBlockType(r rune) BlockType {
	switch strings.ToUpper(string(r)) {
	case "R":
		return BlockRed
	case "Y":
		return BlockYellow
	case "G":
		return BlockGreen
	case "B":
		return BlockBlue
	case "P":
		return BlockPurple
	default:
		return BlockNone
	}
}

// Palette returns the first n block colors, clamped to [1, MaxColors].
func Palette(n int) []BlockType {
	n = core.Clamp(n, 1, MaxColors)
	types := make([]BlockType, n)
	for i := range types {
		types[i] = BlockType(i + 1)
	}
	return types
}

// Block is the content of an occupied cell.
// VerticalOffset and HorizontalOffset record how many rows/columns the block
// still has to travel on screen after a compaction; they are presentation
// only and are zero whenever no animation is running.
type Block struct {
	Type             BlockType
	VerticalOffset   int
	HorizontalOffset int
}

// Empty reports whether the cell holds no block.
func (b Block) Empty() bool {
	return b.Type == BlockNone
}

// Generator yields the block type for a grid position.
// Returning BlockNone leaves the cell empty.
type Generator func(x, y int) BlockType

// RandomGenerator picks uniformly from the given palette using rng.
func RandomGenerator(rng *rand.Rand, palette []BlockType) Generator {
	return func(_, _ int) BlockType {
		if len(palette) == 0 {
			return BlockNone
		}
		return palette[rng.Intn(len(palette))]
	}
}

// FlatGenerator reads types from a column-major array (index x*height + y),
// the same layout Serialize produces.
func FlatGenerator(height int, types []BlockType) Generator {
	return func(x, y int) BlockType {
		i := x*height + y
		if i < 0 || i >= len(types) {
			return BlockNone
		}
		return types[i]
	}
}
