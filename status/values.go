package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// Gauge is a float64 metric, the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Store(v float64) { g.bits.Store(math.Float64bits(v)) }
func (g *Gauge) Load() float64   { return math.Float64frombits(g.bits.Load()) }

// Add adds delta and returns the sum
func (g *Gauge) Add(delta float64) float64 {
	for {
		old := g.bits.Load()
		sum := math.Float64frombits(old) + delta
		if g.bits.CompareAndSwap(old, math.Float64bits(sum)) {
			return sum
		}
	}
}

// MaxLabelLen bounds Label values in bytes
const MaxLabelLen = 32

// Label is a short string metric such as the active camera controller
type Label struct {
	v atomic.Value
}

// Store sets the label, cutting it to MaxLabelLen without splitting a rune
func (l *Label) Store(s string) {
	if len(s) > MaxLabelLen {
		cut := MaxLabelLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	l.v.Store(s)
}

func (l *Label) Load() string {
	s, _ := l.v.Load().(string)
	return s
}
