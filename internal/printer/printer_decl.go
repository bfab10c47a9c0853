package printer

import (
	"strings"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/ast"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/doc"
)

// Alignment levels: each clause family (generics, ports, a run of signal
// declarations) opens its own Align scope (internal/doc), so reusing level
// 0 across families never collides. Within a scope the "name list + colon"
// column (level 0) is aligned and, for ports, the mode keyword column
// (level 1); the type and default columns are not aligned (spec.md §4.2
// point 7).
const (
	alignNameColon = 0
	alignModeKw    = 1
)

func printDecl(d ast.Decl, cfg config.Config) *doc.Doc {
	switch n := d.(type) {
	case *ast.LibraryClause:
		return printLibraryClause(n)
	case *ast.UseClause:
		return wrap(n, doc.Concat(doc.Space(doc.Keyword("use"), doc.Text(n.Name)), doc.Text(";")), false)
	case *ast.GenericClause:
		return printGenericClause(n, cfg)
	case *ast.PortClause:
		return printPortClause(n, cfg)
	case *ast.SignalDecl:
		return printSignalDecl(n, cfg)
	case *ast.VariableDecl:
		return printVariableDecl(n, cfg)
	case *ast.ConstantDecl:
		return printConstantDecl(n, cfg)
	case *ast.ComponentDecl:
		return printComponentDecl(n, cfg)
	case *ast.TypeDecl:
		return printTypeDecl(n, cfg)
	case *ast.SubtypeDecl:
		return printSubtypeDecl(n, cfg)
	case *ast.AliasDecl:
		return printAliasDecl(n, cfg)
	case *ast.AttributeDecl:
		return printAttributeDecl(n, cfg)
	case *ast.SubprogramDecl:
		return printSubprogramDecl(n, cfg)
	case *ast.OpaqueDecl:
		return wrap(n, doc.Text(n.OpaqueText), false)
	default:
		return doc.Empty
	}
}

func printLibraryClause(n *ast.LibraryClause) *doc.Doc {
	core := doc.Space(doc.Keyword("library"), doc.Text(strings.Join(n.Names, ", ")))
	return wrap(n, doc.Concat(core, doc.Text(";")), false)
}

func printGenericClause(g *ast.GenericClause, cfg config.Config) *doc.Doc {
	docs := make([]*doc.Doc, len(g.Params))
	for i, p := range g.Params {
		docs[i] = printGenericParam(p, cfg)
	}
	body := doc.Join(doc.Concat(doc.Text(";"), doc.SoftLine), docs...)
	if cfg.AlignSignals.Generic {
		body = doc.Align(body)
	}
	bracket := doc.Bracket(doc.Text("("), body, doc.Text(")"), cfg.IndentFor("generic"))
	core := doc.Concat(doc.Keyword("generic"), doc.Concat(doc.Text(" "), bracket))
	return wrap(g, doc.Concat(core, doc.Text(";")), false)
}

func printPortClause(p *ast.PortClause, cfg config.Config) *doc.Doc {
	docs := make([]*doc.Doc, len(p.Ports))
	for i, port := range p.Ports {
		docs[i] = printPort(port, cfg)
	}
	body := doc.Join(doc.Concat(doc.Text(";"), doc.SoftLine), docs...)
	if cfg.AlignSignals.Port {
		body = doc.Align(body)
	}
	bracket := doc.Bracket(doc.Text("("), body, doc.Text(")"), cfg.IndentFor("port"))
	core := doc.Concat(doc.Keyword("port"), doc.Concat(doc.Text(" "), bracket))
	return wrap(p, doc.Concat(core, doc.Text(";")), false)
}

// nameColonDoc builds the "names :" head of a generic/port/signal
// declaration with the name itself (not the colon) carrying the
// alignment level: padding a just-the-name atom means the colon lands in
// the same column across every row of an Align scope (spec.md §8 S2),
// rather than padding after an already-appended " :" and leaving the
// colon itself staggered.
func nameColonDoc(names []string, level int) *doc.Doc {
	return doc.Concat(doc.TextLevel(strings.Join(names, ", "), level), doc.Text(" :"))
}

func printGenericParam(p *ast.GenericParam, cfg config.Config) *doc.Doc {
	core := doc.Concat(nameColonDoc(p.Names, alignNameColon), doc.Concat(doc.Text(" "), printSubtypeDoc(p.Subtype, cfg)))
	if p.Default != nil {
		core = doc.Concat(core, doc.Space(doc.Text(" :="), exprDoc(p.Default, cfg)))
	}
	return wrap(p, core, false)
}

// printPort uses two alignment levels within its enclosing Align scope
// (spec.md §4.4.2: "level 0 for the name column, level 1 for the mode
// (ports only)"), so both the name and the mode keyword share a column
// across sibling ports when cfg.AlignSignals.Port is set.
func printPort(p *ast.Port, cfg config.Config) *doc.Doc {
	mode := doc.KeywordLevel(modeText(p.Mode), alignModeKw)
	core := doc.Concat(nameColonDoc(p.Names, alignNameColon), doc.Concat(doc.Text(" "), doc.Space(mode, printSubtypeDoc(p.Subtype, cfg))))
	if p.Default != nil {
		core = doc.Concat(core, doc.Space(doc.Text(" :="), exprDoc(p.Default, cfg)))
	}
	return wrap(p, core, false)
}

func printSignalDecl(n *ast.SignalDecl, cfg config.Config) *doc.Doc {
	core := doc.Space(doc.Keyword("signal"), doc.Concat(nameColonDoc(n.Names, alignNameColon), doc.Concat(doc.Text(" "), printSubtypeDoc(n.Subtype, cfg))))
	if n.Default != nil {
		core = doc.Concat(core, doc.Space(doc.Text(" :="), exprDoc(n.Default, cfg)))
	}
	return wrap(n, doc.Concat(core, doc.Text(";")), false)
}

func printVariableDecl(n *ast.VariableDecl, cfg config.Config) *doc.Doc {
	kw := doc.Keyword("variable")
	if n.Shared {
		kw = doc.Space(doc.Keyword("shared"), kw)
	}
	core := doc.Space(kw, doc.Concat(doc.Text(strings.Join(n.Names, ", ")+" :"), doc.Concat(doc.Text(" "), printSubtypeDoc(n.Subtype, cfg))))
	if n.Default != nil {
		core = doc.Concat(core, doc.Space(doc.Text(" :="), exprDoc(n.Default, cfg)))
	}
	return wrap(n, doc.Concat(core, doc.Text(";")), false)
}

func printConstantDecl(n *ast.ConstantDecl, cfg config.Config) *doc.Doc {
	core := doc.Space(doc.Keyword("constant"), doc.Concat(doc.Text(strings.Join(n.Names, ", ")+" :"), doc.Concat(doc.Text(" "), printSubtypeDoc(n.Subtype, cfg))))
	if n.Default != nil {
		core = doc.Concat(core, doc.Space(doc.Text(" :="), exprDoc(n.Default, cfg)))
	}
	return wrap(n, doc.Concat(core, doc.Text(";")), false)
}

func printComponentDecl(n *ast.ComponentDecl, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Keyword("component"), doc.Text(n.Name))
	if n.HasIs {
		head = doc.Space(head, doc.Keyword("is"))
	}
	var body *doc.Doc = doc.Empty
	if n.Generic != nil {
		body = appendBlock(body, printGenericClause(n.Generic, cfg))
	}
	if n.Port != nil {
		body = appendBlock(body, printPortClause(n.Port, cfg))
	}
	core := head
	if body != doc.Empty {
		core = doc.Concat(core, doc.Nest(doc.Concat(doc.HardLine(1), body), cfg.Indent))
	}
	core = doc.Concat(core, doc.Concat(doc.HardLine(1), endClause("component", true, n.EndName)))
	return wrap(n, core, false)
}

func printTypeDecl(n *ast.TypeDecl, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Space(doc.Keyword("type"), doc.Text(n.Name)), doc.Keyword("is"))
	var def *doc.Doc
	switch n.Kind {
	case ast.TypeEnum:
		lits := make([]*doc.Doc, len(n.EnumLiterals))
		for i, l := range n.EnumLiterals {
			lits[i] = doc.Text(l.Text)
		}
		def = doc.Bracket(doc.Text("("), doc.Join(doc.Concat(doc.Text(","), doc.SoftLine), lits...), doc.Text(")"), cfg.Indent)
	case ast.TypeRecord:
		elems := make([]*doc.Doc, len(n.RecordElems))
		for i, el := range n.RecordElems {
			elems[i] = doc.Concat(doc.Text(strings.Join(el.Names, ", ")+" :"), doc.Concat(doc.Text(" "), doc.Concat(printSubtypeDoc(el.Subtype, cfg), doc.Text(";"))))
		}
		body := doc.JoinHard(elems...)
		def = doc.Concat(doc.Keyword("record"), doc.Concat(doc.Nest(doc.Concat(doc.HardLine(1), body), cfg.Indent), doc.Concat(doc.HardLine(1), doc.Concat(doc.Keyword("end"), doc.Space(doc.Empty, doc.Keyword("record"))))))
	case ast.TypeArray:
		idx := doc.Join(doc.Text(", "), exprDocs(n.ArrayIndex, cfg)...)
		def = doc.Space(doc.Keyword("array"), doc.Concat(doc.Bracket(doc.Text("("), idx, doc.Text(")"), cfg.Indent), doc.Space(doc.Space(doc.Empty, doc.Keyword("of")), printSubtypeDoc(*n.ArrayElem, cfg))))
	case ast.TypeAccess:
		def = doc.Space(doc.Keyword("access"), printSubtypeDoc(*n.AccessOf, cfg))
	case ast.TypeFile:
		def = doc.Space(doc.Keyword("file"), doc.Space(doc.Keyword("of"), printSubtypeDoc(*n.FileOf, cfg)))
	default:
		def = doc.Text(n.OpaqueText)
	}
	core := doc.Concat(doc.Space(head, def), doc.Text(";"))
	return wrap(n, core, false)
}

func printSubtypeDecl(n *ast.SubtypeDecl, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Space(doc.Keyword("subtype"), doc.Text(n.Name)), doc.Keyword("is"))
	core := doc.Concat(doc.Space(head, printSubtypeDoc(n.Subtype, cfg)), doc.Text(";"))
	return wrap(n, core, false)
}

func printAliasDecl(n *ast.AliasDecl, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Keyword("alias"), doc.Text(n.Name))
	if n.Subtype != nil {
		head = doc.Concat(head, doc.Concat(doc.Text(" :"), doc.Concat(doc.Text(" "), printSubtypeDoc(*n.Subtype, cfg))))
	}
	core := doc.Concat(head, doc.Concat(doc.Space(doc.Empty, doc.Keyword("is")), doc.Space(doc.Empty, exprDoc(n.Target, cfg))))
	return wrap(n, doc.Concat(core, doc.Text(";")), false)
}

func printAttributeDecl(n *ast.AttributeDecl, cfg config.Config) *doc.Doc {
	head := doc.Space(doc.Keyword("attribute"), doc.Text(n.Name))
	core := doc.Concat(head, doc.Concat(doc.Text(" :"), doc.Concat(doc.Text(" "), printSubtypeDoc(n.Subtype, cfg))))
	return wrap(n, doc.Concat(core, doc.Text(";")), false)
}

func printSubprogramDecl(n *ast.SubprogramDecl, cfg config.Config) *doc.Doc {
	kw := "procedure"
	if n.IsFunction {
		kw = "function"
	}
	head := doc.Space(doc.Keyword(kw), doc.Text(n.Name))
	if len(n.Params) > 0 {
		params := make([]*doc.Doc, len(n.Params))
		for i, p := range n.Params {
			params[i] = printGenericParam(p, cfg)
		}
		head = doc.Concat(head, doc.Concat(doc.Text(" "), doc.Bracket(doc.Text("("), doc.Join(doc.Concat(doc.Text(";"), doc.SoftLine), params...), doc.Text(")"), cfg.Indent)))
	}
	if n.IsFunction {
		head = doc.Space(head, doc.Space(doc.Keyword("return"), doc.Text(n.ReturnType)))
	}
	return wrap(n, doc.Concat(head, doc.Text(";")), false)
}

// printSubtypeDoc renders a SubtypeIndication (spec.md §9 Open Question 1
// resolution): an optional resolution function, the type mark, and an
// optional index or range constraint.
func printSubtypeDoc(st ast.SubtypeIndication, cfg config.Config) *doc.Doc {
	var core *doc.Doc = doc.Empty
	if st.Resolution != "" {
		core = doc.Concat(doc.Text(st.Resolution), doc.Text(" "))
	}
	core = doc.Concat(core, doc.Text(st.TypeMark))
	if st.Constraint == nil {
		return core
	}
	if st.Constraint.RangeExpr != nil {
		core = doc.Concat(core, doc.Space(doc.Empty, doc.Space(doc.Keyword("range"), exprDoc(st.Constraint.RangeExpr, cfg))))
		return core
	}
	if len(st.Constraint.Ranges) > 0 {
		ranges := doc.Join(doc.Text(", "), exprDocs(st.Constraint.Ranges, cfg)...)
		core = doc.Concat(core, doc.Bracket(doc.Text("("), ranges, doc.Text(")"), cfg.Indent))
	}
	return core
}
