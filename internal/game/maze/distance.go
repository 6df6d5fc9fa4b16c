package maze

// computeDistances builds the breadth-first distance-to-goal field over
// the carved graph. The maze is small and static, so the field is computed
// once at the end of generation and queried by navigation code.
func (m *Map) computeDistances() {
	m.dist = make([][]int, m.Height())
	for y := range m.dist {
		m.dist[y] = make([]int, m.Width())
		for x := range m.dist[y] {
			m.dist[y][x] = -1
		}
	}

	queue := []Coordinates{m.goal}
	m.dist[m.goal.Y][m.goal.X] = 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		d := m.dist[current.Y][current.X]
		exits := m.cellAt(current).Exits
		for _, dir := range Cardinals {
			if !exits.Has(dir) {
				continue
			}
			next, ok := current.Step(dir, m.Width(), m.Height())
			if !ok {
				continue
			}
			if m.dist[next.Y][next.X] != -1 {
				continue
			}
			m.dist[next.Y][next.X] = d + 1
			queue = append(queue, next)
		}
	}
}

// DistanceToGoal returns the number of carved steps from c to the goal and
// true, or -1 and false when c is a wall or otherwise unreachable.
func (m *Map) DistanceToGoal(c Coordinates) (int, bool) {
	d := m.dist[c.Y][c.X]
	return d, d >= 0
}
