package pyast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError reports that no valid syntax tree could be produced.
type SyntaxError struct {
	Line int // 1-based line of the first error, 1 if unknown
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

// Parse builds the analyzer's node tree from Python source. On malformed
// input it returns a *SyntaxError carrying the first failing line.
//
// Each call creates its own tree-sitter parser, so Parse is safe for
// concurrent use.
func Parse(src string) (*Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	content := []byte(src)
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, &SyntaxError{Line: 1, Msg: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &SyntaxError{Line: 1, Msg: "no parse tree produced"}
	}
	if root.HasError() {
		line := firstErrorLine(root)
		return nil, &SyntaxError{Line: line, Msg: "invalid syntax"}
	}

	c := &converter{src: content}
	return c.convert(root, false), nil
}

// firstErrorLine locates the first ERROR or missing node in the raw tree.
func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.HasError() {
			return firstErrorLine(child)
		}
	}
	return int(n.StartPoint().Row) + 1
}

type converter struct {
	src []byte
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c *converter) lines(n *sitter.Node) (int, int) {
	return int(n.StartPoint().Row) + 1, int(n.EndPoint().Row) + 1
}

// convert maps one tree-sitter node to the closed node model. store marks
// identifier nodes that appear in a write position.
func (c *converter) convert(n *sitter.Node, store bool) *Node {
	if n == nil {
		return nil
	}
	line, endLine := c.lines(n)
	out := &Node{Line: line, EndLine: endLine}

	switch n.Type() {
	case "module":
		out.Kind = KindModule
		out.Body = c.convertNamedChildren(n, false)
		out.Children = out.Body

	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			return c.convert(def, false)
		}
		out.Kind = KindOther
		out.Children = c.convertNamedChildren(n, false)

	case "function_definition":
		out.Kind = KindFunctionDef
		if name := n.ChildByFieldName("name"); name != nil {
			out.Name = c.text(name)
		}
		out.Params = c.parameterNames(n.ChildByFieldName("parameters"))
		out.Body = c.convertBlock(n.ChildByFieldName("body"))
		out.Children = out.Body

	case "class_definition":
		out.Kind = KindClassDef
		if name := n.ChildByFieldName("name"); name != nil {
			out.Name = c.text(name)
		}
		out.Body = c.convertBlock(n.ChildByFieldName("body"))
		out.Children = out.Body

	case "expression_statement":
		// Unwrap so a statement body exposes its expression directly.
		if n.NamedChildCount() == 1 {
			return c.convert(n.NamedChild(0), false)
		}
		out.Kind = KindOther
		out.Children = c.convertNamedChildren(n, false)

	case "assignment":
		out.Kind = KindAssign
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if left != nil {
			target := c.convert(left, true)
			out.Targets = flattenTargets(target)
			out.Children = append(out.Children, target)
		}
		if right != nil {
			out.Right = c.convert(right, false)
			out.Children = append(out.Children, out.Right)
		}

	case "identifier":
		out.Kind = KindName
		out.Name = c.text(n)
		if store {
			out.Ctx = CtxStore
		}

	case "attribute":
		out.Kind = KindAttribute
		if attr := n.ChildByFieldName("attribute"); attr != nil {
			out.Name = c.text(attr)
		}
		if obj := n.ChildByFieldName("object"); obj != nil {
			out.Children = append(out.Children, c.convert(obj, false))
		}

	case "call":
		out.Kind = KindCall
		if fn := n.ChildByFieldName("function"); fn != nil {
			out.Func = c.convert(fn, false)
			out.Children = append(out.Children, out.Func)
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			out.Children = append(out.Children, c.convertNamedChildren(args, false)...)
		}

	case "for_statement":
		out.Kind = KindFor
		if left := n.ChildByFieldName("left"); left != nil {
			out.Children = append(out.Children, c.convert(left, true))
		}
		if right := n.ChildByFieldName("right"); right != nil {
			out.Children = append(out.Children, c.convert(right, false))
		}
		out.Body = c.convertBlock(n.ChildByFieldName("body"))
		out.Children = append(out.Children, out.Body...)

	case "while_statement":
		out.Kind = KindWhile
		if cond := n.ChildByFieldName("condition"); cond != nil {
			out.Test = c.convert(cond, false)
			out.Children = append(out.Children, out.Test)
		}
		out.Body = c.convertBlock(n.ChildByFieldName("body"))
		out.Children = append(out.Children, out.Body...)

	case "if_statement", "elif_clause":
		out.Kind = KindIf
		if cond := n.ChildByFieldName("condition"); cond != nil {
			out.Test = c.convert(cond, false)
			out.Children = append(out.Children, out.Test)
		}
		out.Body = c.convertBlock(n.ChildByFieldName("consequence"))
		out.Children = append(out.Children, out.Body...)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "elif_clause":
				out.Children = append(out.Children, c.convert(child, false))
			case "else_clause":
				out.Children = append(out.Children, c.convertBlock(child.ChildByFieldName("body"))...)
			}
		}

	case "comparison_operator":
		out.Kind = KindCompare
		out.Children = c.convertNamedChildren(n, false)
		out.Ops = len(out.Children) - 1
		if out.Ops < 1 {
			out.Ops = 1
		}

	case "boolean_operator":
		out.Kind = KindBoolOp
		if op := n.ChildByFieldName("operator"); op != nil {
			out.Op = c.text(op)
		}
		c.flattenBool(n, out.Op, out)
		out.Operands = len(out.Children)

	case "return_statement":
		out.Kind = KindReturn
		out.Children = c.convertNamedChildren(n, false)

	case "break_statement":
		out.Kind = KindBreak

	case "continue_statement":
		out.Kind = KindContinue

	case "true":
		out.Kind = KindConstant
		out.Value = "True"
	case "false":
		out.Kind = KindConstant
		out.Value = "False"
	case "none":
		out.Kind = KindConstant
		out.Value = "None"
	case "integer", "float", "string":
		out.Kind = KindConstant
		out.Value = c.text(n)

	case "except_clause":
		out.Kind = KindExceptHandler
		out.Children = c.convertNamedChildren(n, false)

	case "with_statement":
		out.Kind = KindWith
		out.Body = c.convertBlock(n.ChildByFieldName("body"))
		out.Children = out.Body

	case "import_statement", "import_from_statement":
		out.Kind = KindImport

	case "pattern_list", "tuple_pattern", "list_pattern":
		out.Kind = KindOther
		out.Children = c.convertNamedChildren(n, store)

	default:
		out.Kind = KindOther
		out.Children = c.convertNamedChildren(n, false)
	}

	return out
}

// flattenBool collapses nested boolean operators with the same operator
// into one node, so "a and b and c" yields a single three-operand BoolOp.
func (c *converter) flattenBool(n *sitter.Node, op string, out *Node) {
	for _, field := range []string{"left", "right"} {
		side := n.ChildByFieldName(field)
		if side == nil {
			continue
		}
		if side.Type() == "boolean_operator" {
			if opNode := side.ChildByFieldName("operator"); opNode != nil && c.text(opNode) == op {
				c.flattenBool(side, op, out)
				continue
			}
		}
		out.Children = append(out.Children, c.convert(side, false))
	}
}

// convertBlock converts the statements of a block node. The body field of
// compound statements is a "block" whose named children are statements.
func (c *converter) convertBlock(block *sitter.Node) []*Node {
	if block == nil {
		return nil
	}
	return c.convertNamedChildren(block, false)
}

func (c *converter) convertNamedChildren(n *sitter.Node, store bool) []*Node {
	count := int(n.NamedChildCount())
	if count == 0 {
		return nil
	}
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, c.convert(child, store))
	}
	return out
}

// parameterNames extracts declared parameter names, including receiver
// names like self, matching how the original declaration reads.
func (c *converter) parameterNames(params *sitter.Node) []string {
	if params == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, c.text(p))
		case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
			if id := firstIdentifier(p); id != nil {
				names = append(names, c.text(id))
			}
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				if id := firstIdentifier(name); id != nil {
					names = append(names, c.text(id))
				}
			}
		}
	}
	return names
}

func firstIdentifier(n *sitter.Node) *sitter.Node {
	if n.Type() == "identifier" {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := firstIdentifier(n.NamedChild(i)); found != nil {
			return found
		}
	}
	return nil
}

// flattenTargets collects the identifier targets of an assignment,
// descending through tuple and list patterns. Attribute and subscript
// targets contribute no names: only plain identifiers in a write position
// count as variable assignments.
func flattenTargets(target *Node) []*Node {
	var out []*Node
	Walk(target, func(n *Node) bool {
		if n.Kind == KindName && n.Ctx == CtxStore {
			out = append(out, n)
		}
		return true
	})
	return out
}
