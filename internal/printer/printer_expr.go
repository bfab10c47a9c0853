package printer

import (
	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
)

// exprDoc renders one expression node. Expressions are rendered in the
// expression-tree trivia mode (spec.md §4.4.1): Break trivia is dropped,
// Comment trivia survives.
func exprDoc(e ast.Expr, cfg config.Config) *doc.Doc {
	if e == nil {
		return doc.Empty
	}
	var core *doc.Doc
	switch n := e.(type) {
	case *ast.TokenExpr:
		core = doc.Text(n.Text)
	case *ast.PhysicalLit:
		core = doc.Text(n.Value + " " + n.Unit)
	case *ast.ParenExpr:
		core = doc.Bracket(doc.Text("("), exprDoc(n.Inner, cfg), doc.Text(")"), cfg.Indent)
	case *ast.UnaryExpr:
		if isAlphabeticOp(n.Op) {
			core = doc.Space(doc.Keyword(n.Op), exprDoc(n.Operand, cfg))
		} else {
			core = doc.Concat(doc.Keyword(n.Op), exprDoc(n.Operand, cfg))
		}
	case *ast.BinaryExpr:
		core = doc.Space(doc.Space(exprDoc(n.Left, cfg), doc.Keyword(n.Op)), exprDoc(n.Right, cfg))
	case *ast.CallExpr:
		args := exprDocs(n.Args, cfg)
		core = doc.Concat(exprDoc(n.Callee, cfg), doc.TightBracket(doc.Text("("), doc.Join(doc.Concat(doc.Text(","), doc.SoftLine), args...), doc.Text(")")))
	case *ast.SliceExpr:
		core = doc.Concat(exprDoc(n.Prefix, cfg), doc.TightBracket(doc.Text("("), exprDoc(n.Range, cfg), doc.Text(")")))
	case *ast.AttributeExpr:
		core = doc.Concat(exprDoc(n.Prefix, cfg), doc.Concat(doc.Text("'"), doc.Text(n.Designator)))
		if n.Arg != nil {
			core = doc.Concat(core, doc.TightBracket(doc.Text("("), exprDoc(n.Arg, cfg), doc.Text(")")))
		}
	case *ast.QualifiedExpr:
		core = doc.Concat(doc.Text(n.TypeMark), doc.Concat(doc.Text("'"), exprDoc(n.Operand, cfg)))
	case *ast.AggregateExpr:
		elems := make([]*doc.Doc, len(n.Elements))
		for i, el := range n.Elements {
			if el.Choice != nil {
				elems[i] = doc.Space(doc.Space(exprDoc(el.Choice, cfg), doc.Text("=>")), exprDoc(el.Value, cfg))
			} else {
				elems[i] = exprDoc(el.Value, cfg)
			}
		}
		core = doc.TightBracket(doc.Text("("), doc.Join(doc.Concat(doc.Text(","), doc.SoftLine), elems...), doc.Text(")"))
	case *ast.AllocatorExpr:
		core = doc.Space(doc.Keyword("new"), exprDoc(n.Operand, cfg))
	default:
		core = doc.Empty
	}
	return wrap(e, core, true)
}

// isAlphabeticOp reports whether an operator spelling is a word ("not",
// "abs") rather than a symbol ("-", "+"), per spec.md §4.4.2's unary-op
// spacing rule: word operators need a separating space, symbolic ones
// bind directly to the operand.
func isAlphabeticOp(op string) bool {
	for _, r := range op {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return len(op) > 0
}

func exprDocs(exprs []ast.Expr, cfg config.Config) []*doc.Doc {
	out := make([]*doc.Doc, len(exprs))
	for i, e := range exprs {
		out[i] = exprDoc(e, cfg)
	}
	return out
}

// printWaveform renders a Waveform (spec.md §3.4): either the "unaffected"
// marker or a comma-separated list of value["after" delay] elements.
func printWaveform(w ast.Waveform, cfg config.Config) *doc.Doc {
	if w.Unaffected {
		return doc.Keyword("unaffected")
	}
	elems := make([]*doc.Doc, len(w.Elements))
	for i, el := range w.Elements {
		d := exprDoc(el.Value, cfg)
		if el.After != nil {
			d = doc.Space(d, doc.Space(doc.Keyword("after"), exprDoc(el.After, cfg)))
		}
		elems[i] = d
	}
	return doc.Join(doc.Concat(doc.Text(","), doc.SoftLine), elems...)
}
