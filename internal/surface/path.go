package surface

// Verb is a path command.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	QuadTo
)

// PathOp is one recorded path command. For QuadTo, (CX, CY) is the control point.
type PathOp struct {
	Verb   Verb
	X, Y   float64
	CX, CY float64
}

// Path records drawing commands so that every backend can replay them
// with its own path type.
type Path struct {
	ops []PathOp
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.ops = append(p.ops, PathOp{Verb: MoveTo, X: x, Y: y})
}

// LineTo adds a straight segment.
func (p *Path) LineTo(x, y float64) {
	p.ops = append(p.ops, PathOp{Verb: LineTo, X: x, Y: y})
}

// QuadTo adds a quadratic Bézier segment with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.ops = append(p.ops, PathOp{Verb: QuadTo, CX: cx, CY: cy, X: x, Y: y})
}

// Reset clears the path and keeps its storage.
func (p *Path) Reset() {
	p.ops = p.ops[:0]
}

// Ops returns the recorded commands.
func (p *Path) Ops() []PathOp {
	return p.ops
}

// Len returns the number of recorded commands.
func (p *Path) Len() int {
	return len(p.ops)
}
