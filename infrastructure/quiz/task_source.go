package quiz

import "calcd/domain/arith"

// TaskSource issues tasks and wire ids. *arith.Generator implements it.
type TaskSource interface {
	Generate(class arith.Class) arith.Task
	Uint32() uint32
}
