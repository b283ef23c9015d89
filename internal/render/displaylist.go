package render

import "sync"

type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
)

// Op is one recorded draw call.
type Op struct {
	Kind          OpKind
	Width, Height int // OpClear
	X1, Y1        float64
	X2, Y2        float64 // OpLine
	Radius        float64 // OpCircle
	Color         Color
	LineWidth     float64
	GlowRadius    float64
	GlowColor     Color
}

// DisplayList is a Surface that records draw calls for later replay.
type DisplayList struct {
	Ops []Op
}

func (d *DisplayList) Clear(width, height int) {
	d.Ops = append(d.Ops[:0], Op{Kind: OpClear, Width: width, Height: height})
}

func (d *DisplayList) FillCircle(x, y, radius float64, c Color) {
	d.Ops = append(d.Ops, Op{Kind: OpCircle, X1: x, Y1: y, Radius: radius, Color: c})
}

func (d *DisplayList) StrokeLine(x1, y1, x2, y2 float64, c Color, width, glowRadius float64, glowColor Color) {
	d.Ops = append(d.Ops, Op{
		Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2,
		Color: c, LineWidth: width, GlowRadius: glowRadius, GlowColor: glowColor,
	})
}

// Count returns how many ops of kind k were recorded.
func (d *DisplayList) Count(k OpKind) int {
	n := 0
	for _, op := range d.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Replay issues every recorded op against dst in order.
func (d *DisplayList) Replay(dst Surface) {
	for _, op := range d.Ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Width, op.Height)
		case OpCircle:
			dst.FillCircle(op.X1, op.Y1, op.Radius, op.Color)
		case OpLine:
			dst.StrokeLine(op.X1, op.Y1, op.X2, op.Y2, op.Color, op.LineWidth, op.GlowRadius, op.GlowColor)
		}
	}
}

// FrameBuffer double-buffers display lists between a producer drawing frames
// and a consumer presenting them on another goroutine.
type FrameBuffer struct {
	mu    sync.Mutex
	back  *DisplayList
	front *DisplayList
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{back: &DisplayList{}, front: &DisplayList{}}
}

// Back returns the list the producer draws into.
func (f *FrameBuffer) Back() *DisplayList { return f.back }

// Swap publishes the back list as the newest complete frame.
func (f *FrameBuffer) Swap() {
	f.mu.Lock()
	f.back, f.front = f.front, f.back
	f.mu.Unlock()
}

// ReplayFront draws the newest complete frame onto dst.
func (f *FrameBuffer) ReplayFront(dst Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.front.Replay(dst)
}

// FrameBuffer is itself a Surface: draw calls go to the back list.
func (f *FrameBuffer) Clear(width, height int) { f.back.Clear(width, height) }

func (f *FrameBuffer) FillCircle(x, y, radius float64, c Color) { f.back.FillCircle(x, y, radius, c) }

func (f *FrameBuffer) StrokeLine(x1, y1, x2, y2 float64, c Color, width, glowRadius float64, glowColor Color) {
	f.back.StrokeLine(x1, y1, x2, y2, c, width, glowRadius, glowColor)
}
