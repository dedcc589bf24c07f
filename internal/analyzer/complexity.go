package analyzer

import "github.com/codegate-sec/codegate/internal/pyast"

// Complexity computes the cyclomatic complexity of a function subtree:
// 1 plus one per conditional, loop, exception handler, or with block, plus
// N-1 per boolean expression with N operands. Each call scores its subtree
// independently from the base value, so nested function definitions never
// inherit an enclosing function's count.
func Complexity(fn *pyast.Node) int {
	complexity := 1
	pyast.WalkBody(fn, func(n *pyast.Node) bool {
		switch n.Kind {
		case pyast.KindIf, pyast.KindWhile, pyast.KindFor, pyast.KindExceptHandler, pyast.KindWith:
			complexity++
		case pyast.KindBoolOp:
			if n.Operands > 1 {
				complexity += n.Operands - 1
			}
		}
		return true
	})
	return complexity
}
