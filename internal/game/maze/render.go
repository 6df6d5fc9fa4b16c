package maze

import "strings"

// Render returns an ASCII dump of the grid for debugging: '.' for walls,
// '*' for the goal, digits for starting positions, and corridor glyphs for
// path cells ('|' vertical, '-' horizontal, '+' crossroads, arrows for
// dead ends, '#' for any other junction). Row 0 prints at the bottom so
// north points up.
func (m *Map) Render() string {
	rows := make([][]rune, m.Height())
	for y := range rows {
		rows[y] = make([]rune, m.Width())
	}

	m.Each(func(c Coordinates, cell *GridCell) {
		rows[c.Y][c.X] = cellGlyph(cell)
	})
	for i, start := range m.starts {
		rows[start.Y][start.X] = rune('1' + i)
	}

	var b strings.Builder
	for y := m.Height() - 1; y >= 0; y-- {
		b.WriteString(string(rows[y]))
		b.WriteByte('\n')
	}
	return b.String()
}

func cellGlyph(cell *GridCell) rune {
	switch cell.Kind {
	case KindWall:
		return '.'
	case KindGoal:
		return '*'
	}
	switch cell.Exits {
	case North:
		return '^'
	case South:
		return 'v'
	case East:
		return '>'
	case West:
		return '<'
	case Longitudinal:
		return '|'
	case Latitudinal:
		return '-'
	case Omnidirectional:
		return '+'
	default:
		return '#'
	}
}
