package arith

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	intOperandMax     = 100
	intDivisorMax     = 99
	floatOperandSpan  = 10000
	floatDivisorSpan  = 9900
	floatOperandScale = 100.0
)

// Generator produces random tasks. It is safe for concurrent use; the datagram loop
// and stream handlers share one instance.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded with seed, or from the clock when seed is zero.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Generate returns a task in the requested class. AnyClass picks int or float with equal probability.
func (g *Generator) Generate(class Class) Task {
	g.mu.Lock()
	defer g.mu.Unlock()

	if class == AnyClass {
		class = IntClass
		if g.rnd.IntN(2) == 1 {
			class = FloatClass
		}
	}

	if class == FloatClass {
		return g.floatTask()
	}
	return g.intTask()
}

// Uint32 returns a random value, used for wire record ids.
func (g *Generator) Uint32() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Uint32()
}

// Intn returns a random value in [0, n).
func (g *Generator) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(n)
}

func (g *Generator) intTask() Task {
	op := IntAdd + Operator(g.rnd.IntN(4))
	task := Task{
		Operator:  op,
		IntValue1: int32(g.rnd.IntN(intOperandMax) + 1),
	}
	if op == IntDivide {
		for task.IntValue2 == 0 {
			task.IntValue2 = int32(g.rnd.IntN(intDivisorMax) + 1)
		}
		return task
	}
	task.IntValue2 = int32(g.rnd.IntN(intOperandMax) + 1)
	return task
}

func (g *Generator) floatTask() Task {
	op := FloatAdd + Operator(g.rnd.IntN(4))
	task := Task{
		Operator:  op,
		FltValue1: float64(g.rnd.IntN(floatOperandSpan))/floatOperandScale + 1.0,
	}
	if op == FloatDivide {
		for task.FltValue2 == 0 {
			task.FltValue2 = float64(g.rnd.IntN(floatDivisorSpan))/floatOperandScale + 1.0
		}
		return task
	}
	task.FltValue2 = float64(g.rnd.IntN(floatOperandSpan))/floatOperandScale + 1.0
	return task
}
