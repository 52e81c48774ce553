package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/word-forest/internal/models"
)

// Smallest scene the forest is drawn into.
const (
	minSceneWidth  = 40
	minSceneHeight = 12
)

// spot is a target's slot on the scene grid. Width is reserved for the
// longer of the target's number and its word, so a slot never moves while
// a level is played.
type spot struct {
	Index int // position in Session.Targets
	ID    int
	Row   int
	Col   int
	Width int
}

// layoutScene assigns every target a slot inside a w x h grid. Slots keep
// one blank cell between them on the same row. A slot that cannot be
// placed near its placement takes the nearest free space instead.
func layoutScene(targets []models.WordTarget, w, h int) []spot {
	w = max(w, minSceneWidth)
	h = max(h, minSceneHeight)

	used := make([][]bool, h)
	for r := range used {
		used[r] = make([]bool, w)
	}
	free := func(r, c, width int) bool {
		if c < 0 || c+width > w {
			return false
		}
		for i := max(c-1, 0); i < min(c+width+1, w); i++ {
			if used[r][i] {
				return false
			}
		}
		return true
	}

	spots := make([]spot, 0, len(targets))
	for i, t := range targets {
		width := min(slotWidth(i, t), w)
		row := min(t.Placement.Y*h/100, h-1)
		col := min(t.Placement.X*w/100, w-width)

		r, c, ok := nearestFree(row, col, h, w, func(r, c int) bool { return free(r, c, width) })
		if !ok {
			r, c = row, col
		}
		for x := c; x < c+width; x++ {
			used[r][x] = true
		}
		spots = append(spots, spot{Index: i, ID: t.ID, Row: r, Col: c, Width: width})
	}
	return spots
}

// nearestFree scans rows outward from row, and within each row columns
// outward from col, for a cell where fits holds.
func nearestFree(row, col, h, w int, fits func(r, c int) bool) (int, int, bool) {
	for dr := 0; dr < h; dr++ {
		rows := []int{row + dr, row - dr}
		if dr == 0 {
			rows = rows[:1]
		}
		for _, r := range rows {
			if r < 0 || r >= h {
				continue
			}
			for dc := 0; dc < w; dc++ {
				if fits(r, col+dc) {
					return r, col + dc, true
				}
				if dc > 0 && fits(r, col-dc) {
					return r, col - dc, true
				}
			}
		}
	}
	return 0, 0, false
}

func slotWidth(i int, t models.WordTarget) int {
	return 2 + max(len(strconv.Itoa(i+1)), lipgloss.Width(t.Word))
}

// spotAt returns the target whose slot covers the cell (col, row).
func spotAt(spots []spot, col, row int) (spot, bool) {
	for _, s := range spots {
		if s.Row == row && col >= s.Col && col < s.Col+s.Width {
			return s, true
		}
	}
	return spot{}, false
}

// renderScene draws the forest. cursor is the index of the keyboard
// selection, or -1.
func renderScene(s models.Session, w, h, cursor int) string {
	w = max(w, minSceneWidth)
	h = max(h, minSceneHeight)
	spots := layoutScene(s.Targets, w, h)

	rows := make([][]spot, h)
	for _, sp := range spots {
		rows[sp.Row] = append(rows[sp.Row], sp)
	}

	var b strings.Builder
	for r := 0; r < h; r++ {
		line := rows[r]
		sort.Slice(line, func(i, j int) bool { return line[i].Col < line[j].Col })

		col := 0
		for _, sp := range line {
			if sp.Col < col {
				continue
			}
			b.WriteString(ground(r, col, sp.Col))
			b.WriteString(renderTarget(s, sp, cursor))
			col = sp.Col + sp.Width
		}
		b.WriteString(ground(r, col, w))
		if r < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ground fills columns [from, to) of row r with sparse grass.
func ground(r, from, to int) string {
	if to <= from {
		return ""
	}
	var b strings.Builder
	for c := from; c < to; c++ {
		if (r*31+c*17)%29 == 0 {
			b.WriteString(mutedStyle.Render(","))
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func renderTarget(s models.Session, sp spot, cursor int) string {
	t := s.Targets[sp.Index]
	glyph := glyphs[t.Placement.Category]

	var label string
	var style lipgloss.Style
	switch {
	case t.Found:
		label = glyph + " " + t.Word
		style = mutedStyle.Strikethrough(true)
	case s.Revealed == t.ID:
		label = glyph + " " + t.Word
		style = revealedStyle
	case s.HintTarget == t.ID && s.HintText != "":
		label = glyph + strconv.Itoa(sp.Index+1)
		style = hintedStyle
	default:
		label = glyph + strconv.Itoa(sp.Index+1)
		style = categoryStyles[t.Placement.Category]
	}
	if sp.Index == cursor && !t.Found {
		style = style.Inherit(cursorStyle)
	}

	out := style.Render(label)
	if pad := sp.Width - lipgloss.Width(label); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}
