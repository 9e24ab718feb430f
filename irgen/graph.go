package irgen

import (
	"github.com/fexolm/cat2verilog/ir"
	"github.com/fexolm/cat2verilog/scanner"
)

// depGraph links every signal read by a combinational assignment to the
// signal it drives. Clocked assignments are left out: a register breaks
// combinational feedback.
type depGraph struct {
	nodes []string
	edges map[string][]string
	// order and pos of the assignment driving each target
	order map[string]int
	pos   map[string]scanner.Pos
}

func newDepGraph(assigns []*ir.Assign) *depGraph {
	g := &depGraph{
		edges: make(map[string][]string),
		order: make(map[string]int),
		pos:   make(map[string]scanner.Pos),
	}
	seen := map[string]bool{}
	addNode := func(name string) {
		if !seen[name] {
			seen[name] = true
			g.nodes = append(g.nodes, name)
		}
	}
	for i, a := range assigns {
		g.order[a.Target] = i
		g.pos[a.Target] = a.Pos
		for _, ref := range ir.Refs(a.Expr) {
			addNode(ref)
			g.edges[ref] = append(g.edges[ref], a.Target)
		}
		addNode(a.Target)
	}
	return g
}

const (
	unvisited = iota
	onStack
	done
)

// findCycle runs a depth-first search and returns the first cycle found,
// rotated to start at the signal assigned earliest in the source, together
// with the position of that assignment.
func (g *depGraph) findCycle() ([]string, scanner.Pos) {
	state := make(map[string]int, len(g.nodes))
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = onStack
		stack = append(stack, name)
		for _, next := range g.edges[name] {
			switch state[next] {
			case onStack:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == next {
						return append([]string(nil), stack[i:]...)
					}
				}
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, n := range g.nodes {
		if state[n] != unvisited {
			continue
		}
		if cycle := visit(n); cycle != nil {
			return g.rotate(cycle)
		}
	}
	return nil, scanner.Pos{}
}

func (g *depGraph) rotate(cycle []string) ([]string, scanner.Pos) {
	start := 0
	for i, n := range cycle {
		if g.order[n] < g.order[cycle[start]] {
			start = i
		}
	}
	path := append(append([]string(nil), cycle[start:]...), cycle[:start]...)
	path = append(path, path[0])
	return path, g.pos[path[0]]
}
