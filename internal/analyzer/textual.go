package analyzer

import (
	"regexp"
	"strings"

	"github.com/codegate-sec/codegate/pkg/types"
)

// The whole-file passes below match raw source text, not tree structure.
// They are best-effort heuristics and deliberately decoupled from the
// tree-based rules so their false-positive rate can be tuned on its own.

// membershipTest matches "x in [..." and "x in (..." literal-collection
// membership checks.
var membershipTest = regexp.MustCompile(`\bin\s*[\[(]`)

// checkPerformancePatterns scans each line for performance anti-patterns.
func (a *analyzer) checkPerformancePatterns() {
	for i, line := range a.lines {
		if !membershipTest.MatchString(line) {
			continue
		}
		a.report(types.Issue{
			Kind:        types.KindPerformance,
			Category:    "inefficient_membership_test",
			Severity:    types.SeverityMedium,
			Line:        i + 1,
			Snippet:     strings.TrimSpace(line),
			Description: "Using list for membership testing instead of set",
			Impact:      "O(n) complexity instead of O(1) for large collections",
			Remediation: "Use set for membership testing: 'item in {set_items}' or 'item in set(items)'",
		})
	}

	a.checkRepeatedComputation()
}

// checkRepeatedComputation flags len() recomputation inside a for-loop's
// indented body.
func (a *analyzer) checkRepeatedComputation() {
	for i, line := range a.lines {
		if !strings.Contains(line, "for ") || !strings.Contains(line, ":") {
			continue
		}
		for j := i + 1; j < len(a.lines); j++ {
			body := a.lines[j]
			if !strings.HasPrefix(body, "    ") && strings.TrimSpace(body) != "" {
				break
			}
			if strings.Contains(body, "len(") {
				a.report(types.Issue{
					Kind:        types.KindPerformance,
					Category:    "repeated_computation",
					Severity:    types.SeverityLow,
					Line:        j + 1,
					Snippet:     strings.TrimSpace(body),
					Description: "Potential repeated computation of len() in loop",
					Impact:      "Unnecessary recomputation on each iteration",
					Remediation: "Store len() result in variable before loop",
				})
				break
			}
		}
	}
}

// checkLogicPatterns flags the first statement following a return, break,
// or continue at the same indentation level as unreachable.
func (a *analyzer) checkLogicPatterns() {
	for i, line := range a.lines {
		stripped := strings.TrimSpace(line)
		if !isTerminalStatement(stripped) {
			continue
		}
		for j := i + 1; j < len(a.lines); j++ {
			next := strings.TrimSpace(a.lines[j])
			if next == "" || strings.HasPrefix(next, "#") {
				continue
			}
			if indentOf(a.lines[j]) == indentOf(line) {
				a.report(types.Issue{
					Kind:        types.KindLogic,
					Category:    "unreachable_code",
					Severity:    types.SeverityMedium,
					Line:        j + 1,
					Snippet:     next,
					Description: "Code appears to be unreachable",
					Impact:      "Dead code that will never execute",
					Remediation: "Remove unreachable code or fix control flow",
				})
			}
			break
		}
	}
}

func isTerminalStatement(stripped string) bool {
	return strings.Contains(stripped, "return ") ||
		strings.Contains(stripped, "break") ||
		strings.Contains(stripped, "continue")
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
