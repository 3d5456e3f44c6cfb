package render

import "github.com/lixenwraith/vi-ballistics/vmath"

// Trail is a fixed-capacity ring of recent positions
type Trail struct {
	points []vmath.Vec3F
	head   int
	count  int
}

func NewTrail(capacity int) *Trail {
	return &Trail{points: make([]vmath.Vec3F, max(capacity, 0))}
}

// Push appends p, evicting the oldest point when full
// Consecutive duplicates are dropped
func (t *Trail) Push(p vmath.Vec3F) {
	if len(t.points) == 0 {
		return
	}
	if t.count > 0 && t.Last() == p {
		return
	}
	t.points[t.head] = p
	t.head = (t.head + 1) % len(t.points)
	if t.count < len(t.points) {
		t.count++
	}
}

// Last returns the newest point; zero value when empty
func (t *Trail) Last() vmath.Vec3F {
	if t.count == 0 {
		return vmath.Vec3F{}
	}
	return t.points[(t.head-1+len(t.points))%len(t.points)]
}

func (t *Trail) Len() int { return t.count }

// Points returns a copy ordered oldest to newest
func (t *Trail) Points() []vmath.Vec3F {
	out := make([]vmath.Vec3F, 0, t.count)
	start := (t.head - t.count + len(t.points)) % max(len(t.points), 1)
	for i := 0; i < t.count; i++ {
		out = append(out, t.points[(start+i)%len(t.points)])
	}
	return out
}

func (t *Trail) Reset() {
	t.head, t.count = 0, 0
}
