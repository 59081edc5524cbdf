package searcher

import "math"

type uctPolicy struct {
	c   float64
	lnN float64
}

func newUCT(c float64, parentVisits int) uctPolicy {
	return uctPolicy{c: c, lnN: math.Log(float64(parentVisits))}
}

// evaluate returns w/s + c*sqrt(ln(N)/s). Unvisited children outrank every
// visited one.
func (u uctPolicy) evaluate(w float64, s int) float64 {
	if s == 0 {
		return math.Inf(1)
	}
	n := float64(s)
	return w/n + u.c*math.Sqrt(u.lnN/n)
}

// uct scores child against its parent's visit count.
func uct(child *Node, c float64) float64 {
	if child.parent == nil {
		panic("cannot compute UCT for a root node")
	}
	return newUCT(c, child.parent.simCount).evaluate(child.winScore, child.simCount)
}
