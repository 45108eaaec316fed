package effect

import (
	"math"
	"sort"

	"go-backdrop/internal/config"
	"go-backdrop/internal/surface"
	"go-backdrop/internal/utils"
	"go-backdrop/pkg/render"
)

const (
	circuitNodeChance = 0.3
	circuitEdgeChance = 0.7
	circuitNeighbours = 3
	circuitJitter     = 20.0
)

var (
	circuitTrace = render.RGBA(0, 255, 150, 0.3)
	circuitPad   = render.RGBA(0, 255, 150, 0.8)
)

type circuitNode struct {
	x, y, size float64
	edges      []int // индексы в Circuit.paths
}

type circuitPath struct {
	from, to int
	width    float64
}

type pulse struct {
	node     int
	progress float64
	speed    float64
}

// Circuit — печатная плата: узлы на сетке, дорожки к ближайшим соседям,
// импульсы от узла под указателем.
type Circuit struct {
	grid   float64
	nodes  []circuitNode
	paths  []circuitPath
	pulses []pulse
}

func NewCircuit(t config.EffectSettings) Renderer {
	return &Circuit{grid: t.CircuitGrid}
}

func (c *Circuit) Style() Style {
	return Style{Kind: surface.Kind2D, Increment: 0.016, Backdrop: config.FadeColor}
}

func (c *Circuit) Seed(width, height float64, rng *utils.PRNGService) {
	c.nodes = c.nodes[:0]
	c.paths = c.paths[:0]
	c.pulses = c.pulses[:0]

	for x := c.grid; x < width; x += c.grid {
		for y := c.grid; y < height; y += c.grid {
			if !rng.Chance(circuitNodeChance) {
				continue
			}
			c.nodes = append(c.nodes, circuitNode{
				x:    x + rng.Centered(circuitJitter),
				y:    y + rng.Centered(circuitJitter),
				size: rng.Range(2, 5),
			})
		}
	}

	for i := range c.nodes {
		for _, j := range c.nearest(i, circuitNeighbours) {
			if !rng.Chance(circuitEdgeChance) {
				continue
			}
			c.paths = append(c.paths, circuitPath{from: i, to: j, width: rng.Range(0.5, 2)})
			p := len(c.paths) - 1
			c.nodes[i].edges = append(c.nodes[i].edges, p)
			c.nodes[j].edges = append(c.nodes[j].edges, p)
		}
	}
}

// nearest возвращает до n ближайших к узлу i других узлов.
func (c *Circuit) nearest(i, n int) []int {
	idx := make([]int, 0, len(c.nodes)-1)
	for j := range c.nodes {
		if j != i {
			idx = append(idx, j)
		}
	}
	from := c.nodes[i]
	sort.SliceStable(idx, func(a, b int) bool {
		na, nb := c.nodes[idx[a]], c.nodes[idx[b]]
		return math.Hypot(na.x-from.x, na.y-from.y) < math.Hypot(nb.x-from.x, nb.y-from.y)
	})
	if len(idx) > n {
		idx = idx[:n]
	}
	return idx
}

// PointerMoved запускает импульс из ближайшего узла, если он рядом.
func (c *Circuit) PointerMoved(x, y float64, rng *utils.PRNGService) {
	if len(c.nodes) == 0 {
		return
	}
	best, bestDist := 0, math.Inf(1)
	for i, n := range c.nodes {
		if d := math.Hypot(n.x-x, n.y-y); d < bestDist {
			best, bestDist = i, d
		}
	}
	if bestDist >= config.PulseRadius {
		return
	}
	if len(c.pulses) >= config.MaxPulses {
		c.pulses = append(c.pulses[:0], c.pulses[1:]...)
	}
	c.pulses = append(c.pulses, pulse{node: best, speed: rng.Range(0.02, 0.04)})
}

// Pulses — число живых импульсов.
func (c *Circuit) Pulses() int { return len(c.pulses) }

// Nodes — число узлов.
func (c *Circuit) Nodes() int { return len(c.nodes) }

func (c *Circuit) Step(f *Frame) {
	for _, p := range c.paths {
		a, b := c.nodes[p.from], c.nodes[p.to]
		f.Canvas.StrokeLine(a.x, a.y, b.x, b.y, p.width, circuitTrace)
	}
	for _, n := range c.nodes {
		f.Canvas.FillCircle(n.x, n.y, n.size, circuitPad)
	}

	alive := c.pulses[:0]
	for _, p := range c.pulses {
		p.progress += p.speed * f.Speed
		origin := c.nodes[p.node]
		for _, e := range origin.edges {
			path := c.paths[e]
			other := path.to
			if other == p.node {
				other = path.from
			}
			end := c.nodes[other]
			x := utils.Lerp(origin.x, end.x, p.progress)
			y := utils.Lerp(origin.y, end.y, p.progress)
			f.Canvas.FillCircle(x, y, 3, circuitPad)
		}
		if p.progress < 1 {
			alive = append(alive, p)
		}
	}
	c.pulses = alive
}
