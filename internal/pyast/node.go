// Package pyast provides a compact Python syntax-tree model for the
// structural analyzer, built from a tree-sitter parse. The node kinds form
// a closed set so detection rules can dispatch over an enumerated tag
// instead of open-ended type inspection.
package pyast

// NodeKind enumerates the closed set of syntax-tree node kinds the
// analyzer understands. Anything else is mapped to KindOther and only
// traversed, never matched.
type NodeKind int

const (
	KindModule NodeKind = iota
	KindFunctionDef
	KindClassDef
	KindAssign
	KindName
	KindAttribute
	KindCall
	KindFor
	KindWhile
	KindIf
	KindCompare
	KindBoolOp
	KindReturn
	KindBreak
	KindContinue
	KindConstant
	KindExceptHandler
	KindWith
	KindImport
	KindOther
)

// NameCtx distinguishes reads from writes for identifier nodes.
type NameCtx int

const (
	CtxLoad NameCtx = iota
	CtxStore
)

// Node is one syntax-tree node. Children always holds every converted
// child in document order; Func, Test, Targets, and Body alias entries of
// Children for the node kinds that have that structure.
type Node struct {
	Kind    NodeKind
	Line    int // 1-based
	EndLine int

	Name     string   // FunctionDef/ClassDef name, Name identifier, Attribute attr
	Ctx      NameCtx  // Name nodes only
	Value    string   // Constant literal text ("True", "42", ...)
	Params   []string // FunctionDef parameter names
	Ops      int      // Compare: number of chained operators
	Operands int      // BoolOp: operand count after flattening same-op chains
	Op       string   // BoolOp operator ("and" / "or")

	Func    *Node   // Call callee
	Test    *Node   // If/While condition
	Targets []*Node // Assign left-hand sides
	Right   *Node   // Assign right-hand side
	Body    []*Node // statement list (Module/FunctionDef/ClassDef/For/While/If/With)

	Children []*Node
}

// Walk visits n and its descendants in document (pre-)order. If visit
// returns false the node's children are skipped.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// WalkBody visits every descendant of n without visiting n itself.
func WalkBody(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// IsTrueLiteral reports whether the node is the constant True.
func (n *Node) IsTrueLiteral() bool {
	return n != nil && n.Kind == KindConstant && n.Value == "True"
}

// Truthy reports the Python truthiness of a constant literal. Non-constant
// nodes report false.
func (n *Node) Truthy() bool {
	if n == nil || n.Kind != KindConstant {
		return false
	}
	switch n.Value {
	case "False", "None", "0", "0.0", `""`, "''":
		return false
	}
	return true
}
