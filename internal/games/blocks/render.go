package blocks

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/blocks/internal/core"
)

const blockGlyph = '█'

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.BoardRect()
	frame := core.NewRect(board.X-frameSize, board.Y-frameSize, board.W+2*frameSize, board.H+2*frameSize)

	g.renderHUD(dst)
	dst.DrawBox(frame)
	g.renderBoard(dst, board, g.level.Snapshot())
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")

	boardW, boardH := g.boardSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", boardW+2*frameSize, boardH+2*frameSize+hudHeight))
}

// renderHUD draws score, distance to target and countdown above the board.
func (g *Game) renderHUD(dst *core.Screen) {
	scoreStr := fmt.Sprintf("Score: %d", g.score)

	var infoStr string
	if g.mode == ModeTimed {
		secs := int(math.Ceil(g.countdown.Seconds()))
		infoStr = fmt.Sprintf("Target: %d  Time: %ds", max(g.targetScore-g.score, 0), secs)
	} else {
		infoStr = fmt.Sprintf("Boards: %d", g.levels)
	}

	x := max(0, (g.screenW-len(scoreStr)-2-len(infoStr))/2)
	dst.DrawText(x, 0, scoreStr)

	color := core.ColorDefault
	if g.mode == ModeTimed && g.countdown < 10*time.Second {
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(x+len(scoreStr)+2, 0, infoStr, color)
}

// renderBoard draws every block, displaced by the running animation.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect, snap LevelSnapshot) {
	cellW, cellH := g.cfg.Cell.Width, g.cfg.Cell.Height
	glyphW := cellW
	if cellW > 1 {
		glyphW = cellW - 1 // Leave a gap between columns
	}

	for x := 0; x < snap.Grid.Width; x++ {
		for y := 0; y < snap.Grid.Height; y++ {
			block := snap.Grid.At(x, y)
			if block.Empty() {
				continue
			}

			// Blocks still travelling are drawn above (falling) or to the
			// right (shifting) of their logical cell.
			up := math.Min(snap.Animation.FallRatio, float64(block.VerticalOffset))
			right := math.Min(snap.Animation.ShiftRatio, float64(block.HorizontalOffset))

			px := board.X + x*cellW + int(math.Round(right*float64(cellW)))
			py := board.Y + y*cellH - int(math.Round(up*float64(cellH)))

			for dy := 0; dy < cellH; dy++ {
				for dx := 0; dx < glyphW; dx++ {
					if board.Contains(px+dx, py+dy) {
						dst.SetColored(px+dx, py+dy, blockGlyph, block.Type.Color())
					}
				}
			}
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	centerX, centerY := board.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		scoreStr := fmt.Sprintf("Score: %d", g.score)
		g.drawOverlay(dst, centerX, centerY, "Game over!", scoreStr, "Press R to restart")
		return
	}

	if g.levelDone {
		g.drawOverlay(dst, centerX, centerY, "Level done!")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	// Draw box
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	// Draw text
	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
