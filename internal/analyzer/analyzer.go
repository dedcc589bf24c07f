// Package analyzer implements the structural static analyzer: a single
// pre-order traversal over the Python syntax tree that emits diagnostics
// for logic defects, performance anti-patterns, dead code, and excessive
// complexity.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/codegate-sec/codegate/internal/pyast"
	"github.com/codegate-sec/codegate/pkg/types"
)

// exemptFunctions are definition names never reported as unused: the
// entry point, the constructor, and the string-conversion hooks.
var exemptFunctions = map[string]bool{
	"main":     true,
	"__init__": true,
	"__str__":  true,
	"__repr__": true,
}

// AnalyzeSource parses src and runs the full structural analysis. If no
// valid syntax tree can be produced it returns exactly one critical
// syntax_error issue and performs no further analysis.
func AnalyzeSource(src string) []types.Issue {
	tree, err := pyast.Parse(src)
	if err != nil {
		serr, ok := err.(*pyast.SyntaxError)
		line := 1
		if ok && serr.Line >= 1 {
			line = serr.Line
		}
		lines := strings.Split(src, "\n")
		snippet := ""
		if line <= len(lines) {
			snippet = strings.TrimSpace(lines[line-1])
		}
		return []types.Issue{{
			Kind:        types.KindLogic,
			Category:    "syntax_error",
			Severity:    types.SeverityCritical,
			Line:        line,
			Snippet:     snippet,
			Description: fmt.Sprintf("Syntax error: %v", err),
			Impact:      "Code will not execute",
			Remediation: "Fix the syntax error",
		}}
	}
	return Analyze(tree, src)
}

// Analyze runs all detection rules over an already-parsed tree. It is a
// pure function of tree and source text: it has no side effects and never
// fails — rules that cannot evaluate a node are skipped silently.
func Analyze(tree *pyast.Node, src string) []types.Issue {
	a := newAnalyzer(src)
	a.visit(tree)
	a.checkUnusedDefinitions()
	a.checkPerformancePatterns()
	a.checkLogicPatterns()
	return a.issues
}

type definition struct {
	name string
	line int
}

// analyzer holds the per-scan traversal state. A fresh instance is created
// for every scan, so concurrent scans share nothing.
type analyzer struct {
	src   string
	lines []string

	issues []types.Issue

	// Name tracking is deliberately flat: a name defined in one function
	// and read anywhere else in the file counts as used.
	used    map[string]bool
	calls   map[string]bool
	funcs   []definition
	classes []definition

	varOrder   []string
	varAssigns map[string][]int

	currentFunc  string
	currentClass string
}

func newAnalyzer(src string) *analyzer {
	return &analyzer{
		src:        src,
		lines:      strings.Split(src, "\n"),
		used:       make(map[string]bool),
		calls:      make(map[string]bool),
		varAssigns: make(map[string][]int),
	}
}

func (a *analyzer) visit(n *pyast.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case pyast.KindFunctionDef:
		a.funcs = append(a.funcs, definition{n.Name, n.Line})

		prev := a.currentFunc
		a.currentFunc = n.Name
		a.checkFunctionComplexity(n)
		a.checkUnusedParameters(n)
		a.visitChildren(n)
		a.currentFunc = prev
		return

	case pyast.KindClassDef:
		a.classes = append(a.classes, definition{n.Name, n.Line})

		prev := a.currentClass
		a.currentClass = n.Name
		a.checkClassSize(n)
		a.visitChildren(n)
		a.currentClass = prev
		return

	case pyast.KindAssign:
		for _, target := range n.Targets {
			a.varAssigns[target.Name] = append(a.varAssigns[target.Name], n.Line)
			if len(a.varAssigns[target.Name]) == 1 {
				a.varOrder = append(a.varOrder, target.Name)
			}
		}
		a.checkAssignmentConfusion(n)

	case pyast.KindName:
		if n.Ctx == pyast.CtxLoad {
			a.used[n.Name] = true
		}

	case pyast.KindCall:
		if n.Func != nil {
			switch n.Func.Kind {
			case pyast.KindName:
				a.calls[n.Func.Name] = true
			case pyast.KindAttribute:
				a.calls[n.Func.Name] = true
			}
		}
		a.checkSortUsage(n)

	case pyast.KindFor:
		a.checkNestedLoops(n)
		a.checkComprehensionOpportunity(n)

	case pyast.KindWhile:
		a.checkNestedLoops(n)
		a.checkInfiniteLoop(n)

	case pyast.KindIf:
		a.checkConstantCondition(n)

	case pyast.KindCompare:
		a.checkChainedComparison(n)

	case pyast.KindBoolOp:
		a.checkBitwiseVsLogical(n)
	}

	a.visitChildren(n)
}

func (a *analyzer) visitChildren(n *pyast.Node) {
	for _, c := range n.Children {
		a.visit(c)
	}
}

func (a *analyzer) report(issue types.Issue) {
	a.issues = append(a.issues, issue)
}

// lineSnippet returns the trimmed source line, or "" when out of range.
func (a *analyzer) lineSnippet(line int) string {
	if line >= 1 && line <= len(a.lines) {
		return strings.TrimSpace(a.lines[line-1])
	}
	return ""
}

func metric(v float64) *float64 { return &v }

func (a *analyzer) checkFunctionComplexity(n *pyast.Node) {
	loc := 0
	end := n.EndLine
	if end > len(a.lines) {
		end = len(a.lines)
	}
	for i := n.Line - 1; i < end; i++ {
		line := strings.TrimSpace(a.lines[i])
		if line != "" && !strings.HasPrefix(line, "#") {
			loc++
		}
	}

	if loc > 50 {
		severity := types.SeverityLow
		if loc > 100 {
			severity = types.SeverityMedium
		}
		a.report(types.Issue{
			Kind:        types.KindComplexity,
			Category:    "long_function",
			Severity:    severity,
			Line:        n.Line,
			Snippet:     fmt.Sprintf("def %s(...):", n.Name),
			Description: fmt.Sprintf("Function '%s' is very long (%d lines of code)", n.Name, loc),
			Impact:      "Difficult to understand, maintain, and test",
			Remediation: "Consider breaking this function into smaller, more focused functions",
			Metric:      metric(float64(loc)),
		})
	}

	complexity := Complexity(n)
	if complexity > 10 {
		severity := types.SeverityLow
		if complexity > 20 {
			severity = types.SeverityMedium
		}
		a.report(types.Issue{
			Kind:        types.KindComplexity,
			Category:    "high_cyclomatic_complexity",
			Severity:    severity,
			Line:        n.Line,
			Snippet:     fmt.Sprintf("def %s(...):", n.Name),
			Description: fmt.Sprintf("Function '%s' has high cyclomatic complexity (%d)", n.Name, complexity),
			Impact:      "Difficult to test and understand, prone to bugs",
			Remediation: "Simplify control flow, extract complex logic into separate functions",
			Metric:      metric(float64(complexity)),
		})
	}
}

func (a *analyzer) checkClassSize(n *pyast.Node) {
	methods := 0
	pyast.WalkBody(n, func(c *pyast.Node) bool {
		if c.Kind == pyast.KindFunctionDef {
			methods++
		}
		return true
	})

	if methods > 20 {
		a.report(types.Issue{
			Kind:        types.KindComplexity,
			Category:    "large_class",
			Severity:    types.SeverityMedium,
			Line:        n.Line,
			Snippet:     fmt.Sprintf("class %s:", n.Name),
			Description: fmt.Sprintf("Class '%s' has too many methods (%d)", n.Name, methods),
			Impact:      "Violates Single Responsibility Principle, hard to maintain",
			Remediation: "Consider splitting into multiple classes with focused responsibilities",
			Metric:      metric(float64(methods)),
		})
	}
}

func (a *analyzer) checkUnusedParameters(n *pyast.Node) {
	usedInBody := make(map[string]bool)
	pyast.WalkBody(n, func(c *pyast.Node) bool {
		if c.Kind == pyast.KindName && c.Ctx == pyast.CtxLoad {
			usedInBody[c.Name] = true
		}
		return true
	})

	for _, param := range n.Params {
		if usedInBody[param] || strings.HasPrefix(param, "_") {
			continue
		}
		a.report(types.Issue{
			Kind:        types.KindRelevance,
			Category:    "unused_parameter",
			Severity:    types.SeverityLow,
			Line:        n.Line,
			Snippet:     fmt.Sprintf("def %s(%s, ...):", n.Name, param),
			Description: fmt.Sprintf("Parameter '%s' is never used in function '%s'", param, n.Name),
			Impact:      "Code clutter, potential confusion",
			Remediation: fmt.Sprintf("Remove unused parameter '%s' or prefix with underscore if intentionally unused", param),
		})
	}
}

// checkAssignmentConfusion flags assignments whose right-hand side is a
// comparison when the raw line's equals-sign count suggests the author
// meant a comparison. Best-effort textual heuristic.
func (a *analyzer) checkAssignmentConfusion(n *pyast.Node) {
	if n.Right == nil || n.Right.Kind != pyast.KindCompare || len(n.Targets) == 0 {
		return
	}
	line := ""
	if n.Line >= 1 && n.Line <= len(a.lines) {
		line = a.lines[n.Line-1]
	}
	if strings.Contains(line, "==") && strings.Count(line, "=") == 3 {
		a.report(types.Issue{
			Kind:        types.KindLogic,
			Category:    "assignment_confusion",
			Severity:    types.SeverityMedium,
			Line:        n.Line,
			Snippet:     strings.TrimSpace(line),
			Description: "Assignment of comparison result - verify this is intentional",
			Impact:      "May indicate confusion between assignment (=) and equality (==)",
			Remediation: "Double-check if this should be a comparison in an if statement",
		})
	}
}

func (a *analyzer) checkSortUsage(n *pyast.Node) {
	if n.Func == nil || n.Func.Kind != pyast.KindAttribute {
		return
	}
	if n.Func.Name != "sort" && n.Func.Name != "sorted" {
		return
	}
	a.report(types.Issue{
		Kind:        types.KindPerformance,
		Category:    "sort_analysis",
		Severity:    types.SeverityLow,
		Line:        n.Line,
		Snippet:     a.lineSnippet(n.Line),
		Description: "Sort operation detected - verify if full sort is needed",
		Impact:      "May be inefficient if only partial ordering is needed",
		Remediation: "Consider heapq.nlargest/nsmallest for partial sorting, or bisect for maintaining sorted order",
	})
}

func (a *analyzer) checkNestedLoops(n *pyast.Node) {
	nested := false
	pyast.WalkBody(n, func(c *pyast.Node) bool {
		if c.Kind == pyast.KindFor || c.Kind == pyast.KindWhile {
			nested = true
			return false
		}
		return true
	})
	if !nested {
		return
	}
	a.report(types.Issue{
		Kind:        types.KindPerformance,
		Category:    "nested_loops",
		Severity:    types.SeverityMedium,
		Line:        n.Line,
		Snippet:     a.lineSnippet(n.Line),
		Description: "Nested loops detected - potential O(n²) or higher complexity",
		Impact:      "May cause performance issues with large datasets",
		Remediation: "Consider algorithm optimization, caching, or data structure changes",
	})
}

func (a *analyzer) checkComprehensionOpportunity(n *pyast.Node) {
	if len(n.Body) != 1 {
		return
	}
	stmt := n.Body[0]
	if stmt.Kind != pyast.KindCall || stmt.Func == nil {
		return
	}
	if stmt.Func.Kind != pyast.KindAttribute || stmt.Func.Name != "append" {
		return
	}
	a.report(types.Issue{
		Kind:        types.KindPerformance,
		Category:    "list_comprehension_opportunity",
		Severity:    types.SeverityLow,
		Line:        n.Line,
		Snippet:     a.lineSnippet(n.Line),
		Description: "Loop could be replaced with list comprehension",
		Impact:      "Slightly less efficient and less Pythonic",
		Remediation: "Consider using list comprehension: [expr for item in iterable]",
	})
}

func (a *analyzer) checkInfiniteLoop(n *pyast.Node) {
	if !n.Test.IsTrueLiteral() {
		return
	}
	hasBreak := false
	pyast.WalkBody(n, func(c *pyast.Node) bool {
		if c.Kind == pyast.KindBreak {
			hasBreak = true
			return false
		}
		return true
	})
	if hasBreak {
		return
	}
	a.report(types.Issue{
		Kind:        types.KindLogic,
		Category:    "infinite_loop",
		Severity:    types.SeverityHigh,
		Line:        n.Line,
		Snippet:     "while True:",
		Description: "Infinite loop without break statement",
		Impact:      "Will cause program to hang indefinitely",
		Remediation: "Add break condition or use a different loop structure",
	})
}

func (a *analyzer) checkConstantCondition(n *pyast.Node) {
	if n.Test == nil || n.Test.Kind != pyast.KindConstant {
		return
	}
	if n.Test.Truthy() {
		a.report(types.Issue{
			Kind:        types.KindLogic,
			Category:    "always_true_condition",
			Severity:    types.SeverityMedium,
			Line:        n.Line,
			Snippet:     a.lineSnippet(n.Line),
			Description: "Condition is always True",
			Impact:      "Dead code - else branch will never execute",
			Remediation: "Remove the condition or fix the logic",
		})
	} else {
		a.report(types.Issue{
			Kind:        types.KindLogic,
			Category:    "always_false_condition",
			Severity:    types.SeverityMedium,
			Line:        n.Line,
			Snippet:     a.lineSnippet(n.Line),
			Description: "Condition is always False",
			Impact:      "Dead code - if branch will never execute",
			Remediation: "Remove the condition or fix the logic",
		})
	}
}

func (a *analyzer) checkChainedComparison(n *pyast.Node) {
	if n.Ops <= 2 {
		return
	}
	a.report(types.Issue{
		Kind:        types.KindLogic,
		Category:    "complex_chained_comparison",
		Severity:    types.SeverityLow,
		Line:        n.Line,
		Snippet:     a.lineSnippet(n.Line),
		Description: "Complex chained comparison may be hard to understand",
		Impact:      "Reduced code readability",
		Remediation: "Consider breaking into multiple simpler comparisons",
	})
}

// checkBitwiseVsLogical flags a boolean expression whose raw line uses &
// with no other bitwise context. Best-effort textual heuristic.
func (a *analyzer) checkBitwiseVsLogical(n *pyast.Node) {
	line := a.lineSnippet(n.Line)
	if !strings.Contains(line, "&") {
		return
	}
	for _, op := range []string{"<<", ">>", "|", "^"} {
		if strings.Contains(line, op) {
			return
		}
	}
	a.report(types.Issue{
		Kind:        types.KindLogic,
		Category:    "bitwise_vs_logical",
		Severity:    types.SeverityMedium,
		Line:        n.Line,
		Snippet:     line,
		Description: "Potential use of bitwise operator (&) instead of logical operator (and)",
		Impact:      "May cause unexpected behavior in boolean contexts",
		Remediation: "Use 'and' for logical operations, '&' only for bitwise operations",
	})
}

// checkUnusedDefinitions runs after traversal over the flat name tables.
func (a *analyzer) checkUnusedDefinitions() {
	for _, def := range a.funcs {
		if a.calls[def.name] || strings.HasPrefix(def.name, "_") || exemptFunctions[def.name] {
			continue
		}
		a.report(types.Issue{
			Kind:        types.KindRelevance,
			Category:    "unused_function",
			Severity:    types.SeverityLow,
			Line:        def.line,
			Snippet:     fmt.Sprintf("def %s(...):", def.name),
			Description: fmt.Sprintf("Function '%s' is defined but never called", def.name),
			Impact:      "Code clutter, potential confusion",
			Remediation: fmt.Sprintf("Remove unused function '%s' or add calls to it", def.name),
		})
	}

	for _, def := range a.classes {
		if a.used[def.name] || strings.HasPrefix(def.name, "_") {
			continue
		}
		a.report(types.Issue{
			Kind:        types.KindRelevance,
			Category:    "unused_class",
			Severity:    types.SeverityMedium,
			Line:        def.line,
			Snippet:     fmt.Sprintf("class %s:", def.name),
			Description: fmt.Sprintf("Class '%s' is defined but never used", def.name),
			Impact:      "Code clutter, maintenance overhead",
			Remediation: fmt.Sprintf("Remove unused class '%s' or add usage", def.name),
		})
	}

	for _, name := range a.varOrder {
		if a.used[name] || strings.HasPrefix(name, "_") || name == "self" || name == "cls" {
			continue
		}
		a.report(types.Issue{
			Kind:        types.KindRelevance,
			Category:    "unused_variable",
			Severity:    types.SeverityLow,
			Line:        a.varAssigns[name][0],
			Snippet:     fmt.Sprintf("%s = ...", name),
			Description: fmt.Sprintf("Variable '%s' is assigned but never used", name),
			Impact:      "Code clutter, potential waste of computation",
			Remediation: fmt.Sprintf("Remove unused variable '%s' or add usage", name),
		})
	}
}
