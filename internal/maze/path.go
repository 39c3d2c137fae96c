package maze

import "sort"

// PathOptions tunes solution enumeration.
type PathOptions struct {
	// MaxPaths caps the number of returned paths, the best path included.
	MaxPaths int
	// Slack is how many tiles longer than the best path an alternate may be.
	Slack int
}

// DefaultPathOptions returns the options used by FindPossiblePaths.
func DefaultPathOptions() PathOptions {
	return PathOptions{MaxPaths: 8, Slack: 6}
}

// ShortestPath runs a breadth-first search from one tile to another over
// tiles that do not block the given mover. Neighbours are visited in
// NeighbourOrder so equal-length paths always resolve the same way.
// The returned path includes both ends; it is nil when to is unreachable.
func (l *Level) ShortestPath(from, to Coord, mover Attr) []Coord {
	return l.bfs(from, to, mover, nil)
}

func (l *Level) bfs(from, to Coord, mover Attr, avoid map[Coord]struct{}) []Coord {
	if !l.InBounds(from) || !l.InBounds(to) {
		return nil
	}
	if from == to {
		return []Coord{from}
	}

	const unvisited = -1
	parent := make([]int, len(l.tiles))
	for i := range parent {
		parent[i] = unvisited
	}
	start := l.index(from)
	parent[start] = start

	queue := []Coord{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range NeighbourOrder {
			next := cur.Step(d)
			if l.blocked(next, mover) {
				continue
			}
			if _, skip := avoid[next]; skip {
				continue
			}
			ni := l.index(next)
			if parent[ni] != unvisited {
				continue
			}
			parent[ni] = l.index(cur)
			if next == to {
				return l.walkBack(parent, start, ni)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func (l *Level) walkBack(parent []int, start, end int) []Coord {
	var rev []Coord
	for i := end; ; i = parent[i] {
		rev = append(rev, Coord{X: i % l.def.Width, Y: i / l.def.Width})
		if i == start {
			break
		}
	}
	path := make([]Coord, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// FindPossiblePaths returns solution paths from the start point to the end
// point using DefaultPathOptions. The first path is the canonical shortest
// one. An empty result means the maze has no solution.
func (l *Level) FindPossiblePaths() [][]Coord {
	return l.FindPossiblePathsWith(DefaultPathOptions())
}

// FindPossiblePathsWith is FindPossiblePaths with explicit options.
//
// Alternates are found by blocking each interior tile of the best path in
// turn and searching again. Distinct results no longer than the best path
// plus Slack are kept, ordered by length with ties kept in discovery order.
func (l *Level) FindPossiblePathsWith(opts PathOptions) [][]Coord {
	if opts.MaxPaths <= 0 {
		opts.MaxPaths = 1
	}
	if opts.Slack < 0 {
		opts.Slack = 0
	}

	best := l.bfs(l.def.Start, l.def.End, AttrPlayerCollide, nil)
	if best == nil {
		return [][]Coord{}
	}
	paths := [][]Coord{best}
	seen := map[string]struct{}{pathKey(best): {}}

	var alternates [][]Coord
	for _, c := range best[1 : len(best)-1] {
		alt := l.bfs(l.def.Start, l.def.End, AttrPlayerCollide, map[Coord]struct{}{c: {}})
		if alt == nil || len(alt) > len(best)+opts.Slack {
			continue
		}
		key := pathKey(alt)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		alternates = append(alternates, alt)
	}
	sort.SliceStable(alternates, func(i, j int) bool {
		return len(alternates[i]) < len(alternates[j])
	})

	for _, alt := range alternates {
		if len(paths) >= opts.MaxPaths {
			break
		}
		paths = append(paths, alt)
	}
	return paths
}

// HintTiles returns the tiles of the best path and the tiles that appear
// only on alternate paths.
func HintTiles(paths [][]Coord) (best, alternate map[Coord]struct{}) {
	best = make(map[Coord]struct{})
	alternate = make(map[Coord]struct{})
	if len(paths) == 0 {
		return best, alternate
	}
	for _, c := range paths[0] {
		best[c] = struct{}{}
	}
	for _, p := range paths[1:] {
		for _, c := range p {
			if _, ok := best[c]; !ok {
				alternate[c] = struct{}{}
			}
		}
	}
	return best, alternate
}

func pathKey(p []Coord) string {
	b := make([]byte, 0, len(p)*8)
	for _, c := range p {
		b = append(b, c.String()...)
	}
	return string(b)
}
