// Package layout places graph nodes on a canvas with a fixed-budget
// force-directed simulation: edge attraction towards a target length,
// all-pairs repulsion, damped position updates and boundary clamping.
package layout

import (
	"math"

	"github.com/icdkit/icdgraph/internal/graph"
)

// Margin keeps every node this far inside the canvas edges.
const Margin = 80.0

const (
	iterations = 50

	// Spring model: edges pull/push their endpoints towards this length.
	springLength = 200.0
	springFactor = 0.005

	// Near nodes get a strong linear shove apart, far nodes a weak
	// inverse-square one so they can't drift together over many iterations.
	nearDistance  = 120.0
	nearRepulsion = 2.0
	farRepulsion  = 2000.0

	damping = 0.1

	// Non-center nodes start on a ring of this fraction of the short canvas
	// side.
	ringFraction = 0.4

	// Floor on distances so degenerate geometry never divides by zero.
	minDistance = 1.0
)

// Point is a position in canvas coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node id to its computed position. Recomputed from scratch
// whenever the graph or the canvas dimensions change.
type Positions map[string]Point

type vec struct {
	x, y float64
}

// Compute runs the simulation and returns a position for every node in g.
// It is deterministic for a given node/edge order and uses no randomness.
// An empty graph or a canvas without usable area yields an empty map.
func Compute(g *graph.Graph, width, height float64) Positions {
	positions := Positions{}
	if g == nil || len(g.Nodes) == 0 {
		return positions
	}
	if width < 2*Margin || height < 2*Margin {
		return positions
	}

	center := centerNode(g)
	placeInitial(g, center, width, height, positions)

	index := nodeIndex(g)
	forces := make([]vec, len(g.Nodes))
	for iter := 0; iter < iterations; iter++ {
		for i := range forces {
			forces[i] = vec{}
		}

		applyAttraction(g, index, positions, forces)
		applyRepulsion(g, positions, forces)

		for i, n := range g.Nodes {
			p := positions[n.ID]
			p.X = clamp(p.X+forces[i].x*damping, Margin, width-Margin)
			p.Y = clamp(p.Y+forces[i].y*damping, Margin, height-Margin)
			positions[n.ID] = p
		}
	}

	return positions
}

// centerNode picks the node with the strictly maximum degree; ties go to the
// first-encountered node in list order.
func centerNode(g *graph.Graph) string {
	degrees := g.Degrees()
	center := g.Nodes[0].ID
	best := degrees[center]
	for _, n := range g.Nodes[1:] {
		if degrees[n.ID] > best {
			center = n.ID
			best = degrees[n.ID]
		}
	}
	return center
}

// placeInitial puts the center node in the middle of the canvas and the rest
// evenly around a circle, in node-list order.
func placeInitial(g *graph.Graph, center string, width, height float64, positions Positions) {
	cx, cy := width/2, height/2
	positions[center] = Point{X: cx, Y: cy}

	radius := ringFraction * math.Min(width, height)
	others := len(g.Nodes) - 1
	if others < 1 {
		others = 1
	}
	step := 2 * math.Pi / float64(others)

	i := 0
	for _, n := range g.Nodes {
		if n.ID == center {
			continue
		}
		angle := step * float64(i)
		positions[n.ID] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
		i++
	}
}

func applyAttraction(g *graph.Graph, index map[string]int, positions Positions, forces []vec) {
	for _, e := range g.Edges {
		si, ok := index[e.Source]
		if !ok {
			continue
		}
		ti, ok := index[e.Target]
		if !ok {
			continue
		}
		sp, tp := positions[e.Source], positions[e.Target]

		dx, dy := tp.X-sp.X, tp.Y-sp.Y
		d := math.Max(minDistance, math.Hypot(dx, dy))
		f := (d - springLength) * springFactor
		fx, fy := dx/d*f, dy/d*f

		forces[si].x += fx
		forces[si].y += fy
		forces[ti].x -= fx
		forces[ti].y -= fy
	}
}

func applyRepulsion(g *graph.Graph, positions Positions, forces []vec) {
	// All-pairs, O(n^2) per iteration. Accepted ceiling: graphs here are tens
	// of nodes.
	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			ip, jp := positions[g.Nodes[i].ID], positions[g.Nodes[j].ID]

			dx, dy := jp.X-ip.X, jp.Y-ip.Y
			d := math.Max(minDistance, math.Hypot(dx, dy))

			var f float64
			if d < nearDistance {
				f = (nearDistance - d) * nearRepulsion
			} else {
				f = farRepulsion / (d * d)
			}
			fx, fy := dx/d*f, dy/d*f

			forces[i].x -= fx
			forces[i].y -= fy
			forces[j].x += fx
			forces[j].y += fy
		}
	}
}

func nodeIndex(g *graph.Graph) map[string]int {
	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
	}
	return index
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
