package blocks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blocks/internal/core"
)

// ErrDimensionMismatch is returned when serialized grid data does not match
// its declared dimensions.
var ErrDimensionMismatch = errors.New("blocks: grid dimensions do not match data")

// Grid is the game board: a fixed-size field of blocks with the clearing
// and compaction rules of the game.
//
// Compaction is eager: ShiftBlocksDown and ShiftBlocksLeft move blocks to
// their final cells immediately and record the distance travelled in the
// block offsets, which the renderer uses to animate the move. Resetting the
// offsets only clears those presentation values.
type Grid struct {
	cells  *core.Array2D[Block]
	logger *log.Logger
}

// neighborOffsets lists the four orthogonal directions: up, right, down, left.
var neighborOffsets = [4]core.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// NewGrid creates an empty width x height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		cells:  core.NewArray2D(width, height, Block{}),
		logger: log.Default(),
	}
}

// SetLogger replaces the logger used for impossible-state reports.
func (g *Grid) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.cells.Width()
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.cells.Height()
}

// At returns the block at (x, y). Out-of-bounds positions read as empty.
func (g *Grid) At(x, y int) Block {
	return g.cells.Get(x, y)
}

// Initialize fills every cell from gen. Cells for which gen returns
// BlockNone (or an invalid type) become empty.
func (g *Grid) Initialize(gen Generator) {
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			g.cells.Set(x, y, newBlock(gen(x, y)))
		}
	}
}

// FillEmpty fills only the empty cells from gen, leaving existing blocks alone.
func (g *Grid) FillEmpty(gen Generator) {
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if g.cells.Get(x, y).Empty() {
				g.cells.Set(x, y, newBlock(gen(x, y)))
			}
		}
	}
}

func newBlock(t BlockType) Block {
	if !t.Valid() {
		return Block{}
	}
	return Block{Type: t}
}

// IsContiguousArea reports whether (x, y) holds a block with at least one
// orthogonal neighbor of the same type. Only such cells can be clicked.
func (g *Grid) IsContiguousArea(x, y int) bool {
	initial := g.cells.Get(x, y)
	if initial.Empty() {
		return false
	}

	for _, d := range neighborOffsets {
		if g.cells.Get(x+d.X, y+d.Y).Type == initial.Type {
			return true
		}
	}
	return false
}

// HasContiguousArea reports whether any cell on the board is a contiguous area,
// i.e. whether a legal move remains. Scans bottom-up, left to right, since
// boards empty from the top.
func (g *Grid) HasContiguousArea() bool {
	for y := g.Height() - 1; y >= 0; y-- {
		for x := 0; x < g.Width(); x++ {
			if g.IsContiguousArea(x, y) {
				return true
			}
		}
	}
	return false
}

// ClearContiguousBlocks removes the block at (x, y) together with every block
// of the same type reachable through orthogonal neighbors, and returns how
// many blocks were removed. An empty start cell returns 0 and changes nothing.
//
// Each cell is cleared before its neighbors are queued, so a cleared cell
// reads as empty and is never visited twice.
func (g *Grid) ClearContiguousBlocks(x, y int) int {
	initial := g.cells.Get(x, y)
	if initial.Empty() {
		return 0
	}

	target := initial.Type
	g.cells.Set(x, y, Block{})
	count := 1

	stack := []core.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range neighborOffsets {
			nx, ny := p.X+d.X, p.Y+d.Y
			if g.cells.Get(nx, ny).Type != target {
				continue
			}
			g.cells.Set(nx, ny, Block{})
			count++
			stack = append(stack, core.Point{X: nx, Y: ny})
		}
	}

	return count
}

// ShiftBlocksDown drops every block in each column onto the blocks (or floor)
// below it, keeping their top-to-bottom order. Each moved block records the
// number of rows it fell in VerticalOffset. Returns the largest fall distance,
// or 0 if nothing moved.
func (g *Grid) ShiftBlocksDown() int {
	maxFall := 0
	height := g.Height()

	for x := 0; x < g.Width(); x++ {
		emptyBelow := 0
		for y := height - 1; y >= 0; y-- {
			block := g.cells.Get(x, y)
			if block.Empty() {
				emptyBelow++
				continue
			}
			if emptyBelow == 0 {
				continue
			}

			to := y + emptyBelow
			if to >= height {
				g.logger.Error("block would fall through the floor", "x", x, "y", y, "distance", emptyBelow)
				continue
			}

			block.VerticalOffset = emptyBelow
			g.cells.Set(x, to, block)
			g.cells.Set(x, y, Block{})
			maxFall = core.Max(maxFall, emptyBelow)
		}
	}

	return maxFall
}

// ShiftBlocksLeft squeezes out every fully empty column by moving the columns
// to its right one step left per empty column, keeping left-to-right order.
// Each moved block records the number of columns it moved in HorizontalOffset.
// Returns the largest shift distance, or 0 if nothing moved.
func (g *Grid) ShiftBlocksLeft() int {
	maxShift := 0
	emptyColumns := 0

	for x := 0; x < g.Width(); x++ {
		if g.columnEmpty(x) {
			emptyColumns++
			continue
		}
		if emptyColumns == 0 {
			continue
		}

		to := x - emptyColumns
		if to < 0 {
			g.logger.Error("column would shift past the left edge", "x", x, "distance", emptyColumns)
			continue
		}

		for y := 0; y < g.Height(); y++ {
			block := g.cells.Get(x, y)
			if !block.Empty() {
				block.HorizontalOffset = emptyColumns
			}
			g.cells.Set(to, y, block)
			g.cells.Set(x, y, Block{})
		}
		maxShift = emptyColumns
	}

	return maxShift
}

func (g *Grid) columnEmpty(x int) bool {
	for y := 0; y < g.Height(); y++ {
		if !g.cells.Get(x, y).Empty() {
			return false
		}
	}
	return true
}

// ResetVerticalPositions ends a fall animation: every VerticalOffset becomes 0.
func (g *Grid) ResetVerticalPositions() {
	g.eachBlock(func(b *Block) { b.VerticalOffset = 0 })
}

// ResetHorizontalPositions ends a shift animation: every HorizontalOffset becomes 0.
func (g *Grid) ResetHorizontalPositions() {
	g.eachBlock(func(b *Block) { b.HorizontalOffset = 0 })
}

// ResetShiftValues clears both offsets on every block.
func (g *Grid) ResetShiftValues() {
	g.eachBlock(func(b *Block) {
		b.VerticalOffset = 0
		b.HorizontalOffset = 0
	})
}

func (g *Grid) eachBlock(fn func(b *Block)) {
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			block := g.cells.Get(x, y)
			if block.Empty() {
				continue
			}
			fn(&block)
			g.cells.Set(x, y, block)
		}
	}
}

// BlockCount returns the number of occupied cells.
func (g *Grid) BlockCount() int {
	count := 0
	for _, b := range g.cells.Values() {
		if !b.Empty() {
			count++
		}
	}
	return count
}

// IsCleared returns true if no blocks remain.
func (g *Grid) IsCleared() bool {
	return g.BlockCount() == 0
}

// GridState is the flat persisted form of a grid: dimensions plus a
// column-major array of block types (index x*height + y, 0 = empty).
// Offsets are not persisted.
type GridState struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Blocks []BlockType `json:"blocks"`
}

// Serialize returns the flat persisted form of the grid.
func (g *Grid) Serialize() GridState {
	values := g.cells.Values()
	types := make([]BlockType, len(values))
	for i, b := range values {
		types[i] = b.Type
	}
	return GridState{
		Width:  g.Width(),
		Height: g.Height(),
		Blocks: types,
	}
}

// DeserializeGrid rebuilds a grid from its persisted form.
func DeserializeGrid(state GridState) (*Grid, error) {
	if state.Width <= 0 || state.Height <= 0 || len(state.Blocks) != state.Width*state.Height {
		return nil, fmt.Errorf("%w: %dx%d with %d blocks",
			ErrDimensionMismatch, state.Width, state.Height, len(state.Blocks))
	}

	g := NewGrid(state.Width, state.Height)
	g.Initialize(FlatGenerator(state.Height, state.Blocks))
	return g, nil
}

// GridSnapshot is a read-only copy of the board for rendering.
type GridSnapshot struct {
	Width  int
	Height int
	cells  []Block // column-major
}

// At returns the block at (x, y); out of bounds reads as empty.
func (s GridSnapshot) At(x, y int) Block {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return Block{}
	}
	return s.cells[x*s.Height+y]
}

// Snapshot copies the current board contents, offsets included.
func (g *Grid) Snapshot() GridSnapshot {
	return GridSnapshot{
		Width:  g.Width(),
		Height: g.Height(),
		cells:  g.cells.Values(),
	}
}

// ParseGrid builds a grid from rows of block characters, top row first.
// '.' (or any unknown character) is an empty cell.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDimensionMismatch)
	}

	width := len([]rune(rows[0]))
	parsed := make([][]rune, len(rows))
	for i, row := range rows {
		parsed[i] = []rune(row)
		if len(parsed[i]) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrDimensionMismatch, i, len(parsed[i]), width)
		}
	}

	g := NewGrid(width, len(rows))
	g.Initialize(func(x, y int) BlockType {
		return ParseBlockType(parsed[y][x])
	})
	return g, nil
}

// String renders the grid as rows of block characters, top row first.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < g.Width(); x++ {
			sb.WriteRune(g.cells.Get(x, y).Type.Char())
		}
	}
	return sb.String()
}
