package printer

import (
	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
)

func printStmt(s ast.Stmt, cfg config.Config) *doc.Doc {
	switch n := s.(type) {
	case *ast.CondConcurrentAssign:
		return printCondConcurrentAssign(n, cfg)
	case *ast.SelectedConcurrentAssign:
		return printSelectedConcurrentAssign(n, cfg)
	case *ast.Process:
		return printProcess(n, cfg)
	case *ast.SeqSignalAssign:
		return printSeqSignalAssign(n, cfg)
	case *ast.SeqVariableAssign:
		return printSeqVariableAssign(n, cfg)
	case *ast.If:
		return printIf(n, cfg)
	case *ast.Case:
		return printCase(n, cfg)
	case *ast.Loop:
		return printLoop(n, cfg)
	case *ast.Null:
		return printNull(n)
	default:
		return doc.Empty
	}
}

func labelPrefix(label string) *doc.Doc {
	if label == "" {
		return doc.Empty
	}
	return doc.Concat(doc.Text(label+":"), doc.Text(" "))
}

// printCondConcurrentAssign renders the canonical conditional concurrent
// signal assignment shape (spec.md §9 Open Question 2 resolution):
// "[label:] target <= v1 when c1 else v2 when c2 else v3;"
func printCondConcurrentAssign(n *ast.CondConcurrentAssign, cfg config.Config) *doc.Doc {
	armDocs := make([]*doc.Doc, len(n.Arms))
	for i, arm := range n.Arms {
		d := printWaveform(arm.Value, cfg)
		if arm.Condition != nil {
			d = doc.Space(d, doc.Space(doc.Keyword("when"), exprDoc(arm.Condition, cfg)))
		}
		armDocs[i] = d
	}
	sep := doc.Concat(doc.Text(" "), doc.Concat(doc.Keyword("else"), doc.SoftLine))
	assign := doc.Hang(doc.Join(sep, armDocs...))
	head := doc.Space(doc.Concat(labelPrefix(n.Label), exprDoc(n.Target, cfg)), doc.Text("<="))
	// spec.md §4.4.2: "the head (target <=) remains flat; the waveform list
	// hangs" — head and assign are never separated by a breakable point, so
	// lines break only inside assign (at the "else" joins, at the commas of
	// a multi-element waveform, or inside an aggregate or call that does not
	// fit), each continuation landing under the first waveform via Hang's
	// current-column indent.
	core := doc.Concat(doc.Group(doc.Concat(head, doc.Concat(doc.Text(" "), assign))), doc.Text(";"))
	return wrap(n, core, false)
}

func printSelectedConcurrentAssign(n *ast.SelectedConcurrentAssign, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Space(doc.Keyword("with"), exprDoc(n.Selector, cfg)), doc.Keyword("select"))
	target := doc.Space(exprDoc(n.Target, cfg), doc.Text("<="))

	armDocs := make([]*doc.Doc, len(n.Arms))
	for i, arm := range n.Arms {
		choices := doc.Join(doc.Text(" | "), exprDocs(arm.Choices, cfg)...)
		armDocs[i] = doc.Space(printWaveform(arm.Value, cfg), doc.Space(doc.Keyword("when"), choices))
	}
	sep := doc.Concat(doc.Text(","), doc.SoftLine)
	assign := doc.Hang(doc.Join(sep, armDocs...))

	targetLine := doc.Group(doc.Concat(target, doc.Concat(doc.Text(" "), assign)))
	core := doc.Concat(labelPrefix(n.Label), doc.Concat(head, doc.Concat(doc.HardLine(1), targetLine)))
	core = doc.Concat(core, doc.Text(";"))
	return wrap(n, core, false)
}

func printProcess(n *ast.Process, cfg config.Config) *doc.Doc {
	head := doc.Concat(labelPrefix(n.Label), doc.Keyword("process"))
	if n.Sensitivity != nil {
		// spec.md §8 S6: "process(clk)" abuts the sensitivity list directly
		// against the keyword, unlike a generic/port clause's padded parens.
		sens := doc.Join(doc.Text(", "), exprDocs(n.Sensitivity, cfg)...)
		head = doc.Concat(head, doc.TightBracket(doc.Text("("), sens, doc.Text(")")))
	}
	core := head
	if len(n.Decls) > 0 {
		core = doc.Concat(core, doc.Nest(doc.Concat(doc.HardLine(1), joinDecls(n.Decls, cfg)), cfg.Indent))
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), doc.Keyword("begin")))
	if len(n.Body) > 0 {
		core = doc.Concat(core, doc.Nest(doc.Concat(doc.HardLine(1), joinStmts(n.Body, cfg)), cfg.Indent))
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("process", true, "")))
	return wrap(n, core, false)
}

func printSeqSignalAssign(n *ast.SeqSignalAssign, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Concat(labelPrefix(n.Label), exprDoc(n.Target, cfg)), doc.Text("<="))
	assign := doc.Hang(printWaveform(n.Value, cfg))
	core := doc.Concat(doc.Group(doc.Concat(head, doc.Concat(doc.Text(" "), assign))), doc.Text(";"))
	return wrap(n, core, false)
}

func printSeqVariableAssign(n *ast.SeqVariableAssign, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Concat(labelPrefix(n.Label), exprDoc(n.Target, cfg)), doc.Text(":="))
	value := doc.Hang(exprDoc(n.Value, cfg))
	core := doc.Concat(doc.Group(doc.Concat(head, doc.Concat(doc.Text(" "), value))), doc.Text(";"))
	return wrap(n, core, false)
}

func printIf(n *ast.If, cfg config.Config) *doc.Doc {
	var core *doc.Doc
	for i, arm := range n.Arms {
		kw := "if"
		if i > 0 {
			kw = "elsif"
		}
		armHead := doc.Space(doc.Keyword(kw), doc.Space(exprDoc(arm.Condition, cfg), doc.Keyword("then")))
		if i == 0 {
			armHead = doc.Concat(labelPrefix(n.Label), armHead)
		}
		body := doc.Empty
		if len(arm.Body) > 0 {
			body = doc.Nest(doc.Concat(doc.HardLine(1), joinStmts(arm.Body, cfg)), cfg.Indent)
		}
		piece := doc.Concat(armHead, body)
		if i == 0 {
			core = piece
		} else {
			core = doc.Concat(core, doc.Concat(doc.HardLine(1), piece))
		}
	}
	if n.Else != nil {
		elseBody := doc.Empty
		if len(n.Else) > 0 {
			elseBody = doc.Nest(doc.Concat(doc.HardLine(1), joinStmts(n.Else, cfg)), cfg.Indent)
		}
		core = doc.Concat(core, doc.Concat(doc.HardLine(1), doc.Concat(doc.Keyword("else"), elseBody)))
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("if", true, "")))
	return wrap(n, core, false)
}

func printCase(n *ast.Case, cfg config.Config) *doc.Doc {
	head := doc.Concat(labelPrefix(n.Label), doc.Space(doc.Space(doc.Keyword("case"), exprDoc(n.Selector, cfg)), doc.Keyword("is")))
	core := head
	for _, arm := range n.Arms {
		choices := doc.Join(doc.Text(" | "), exprDocs(arm.Choices, cfg)...)
		armHead := doc.Space(doc.Keyword("when"), doc.Space(choices, doc.Text("=>")))
		body := doc.Empty
		if len(arm.Body) > 0 {
			body = doc.Nest(doc.Concat(doc.HardLine(1), joinStmts(arm.Body, cfg)), cfg.Indent)
		}
		piece := doc.Nest(doc.Concat(doc.HardLine(1), doc.Concat(armHead, body)), cfg.Indent)
		core = doc.Concat(core, piece)
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("case", true, "")))
	return wrap(n, core, false)
}

func printLoop(n *ast.Loop, cfg config.Config) *doc.Doc {
	var head *doc.Doc
	switch n.Kind {
	case ast.LoopFor:
		head = doc.Space(doc.Space(doc.Keyword("for"), doc.Text(n.ForVar)), doc.Space(doc.Keyword("in"), exprDoc(n.ForRange, cfg)))
		head = doc.Space(head, doc.Keyword("loop"))
	case ast.LoopWhile:
		head = doc.Space(doc.Space(doc.Keyword("while"), exprDoc(n.Condition, cfg)), doc.Keyword("loop"))
	default:
		head = doc.Keyword("loop")
	}
	head = doc.Concat(labelPrefix(n.Label), head)
	core := head
	if len(n.Body) > 0 {
		core = doc.Concat(core, doc.Nest(doc.Concat(doc.HardLine(1), joinStmts(n.Body, cfg)), cfg.Indent))
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("loop", true, n.EndLabel)))
	return wrap(n, core, false)
}

func printNull(n *ast.Null) *doc.Doc {
	core := doc.Concat(labelPrefix(n.Label), doc.Concat(doc.Keyword("null"), doc.Text(";")))
	return wrap(n, core, false)
}
