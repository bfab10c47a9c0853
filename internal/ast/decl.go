package ast

// Decl is the marker interface for declaration-shaped nodes (spec.md §3.4
// "Declarations").
type Decl interface {
	Node
	decl()
}

// Constraint is either an index constraint or a range constraint attached
// to a SubtypeIndication. Exactly one constructor is used per instance;
// Ranges holds index-constraint dimensions (len > 1 only for multi-dim
// arrays), RangeExpr holds a scalar range constraint.
type Constraint struct {
	Ranges    []Expr // index constraint: one discrete range per dimension
	RangeExpr Expr   // range constraint: "range <expr>"
}

// SubtypeIndication is the canonical shape for every type reference in this
// tree (spec.md §9 Open Question 1 resolution in SPEC_FULL.md §4): an
// optional resolution function name, a type mark, and an optional
// constraint. A bare type-mark reference is one with Resolution == "" and
// Constraint == nil.
type SubtypeIndication struct {
	Resolution string
	TypeMark   string
	Constraint *Constraint
}

// GenericParam is one generic parameter: one-or-more names sharing a
// subtype indication and an optional default expression.
type GenericParam struct {
	Base
	Names   []string
	Subtype SubtypeIndication
	Default Expr // nil when absent
}

func (*GenericParam) decl() {}

// Mode is a port's direction.
type Mode int

const (
	ModeIn Mode = iota
	ModeOut
	ModeInout
	ModeBuffer
	ModeLinkage
)

// Port is one port: one-or-more names, a mode, a subtype indication, and
// an optional default expression.
type Port struct {
	Base
	Names   []string
	Mode    Mode
	Subtype SubtypeIndication
	Default Expr
}

func (*Port) decl() {}

// GenericClause is the ordered list of generic parameters on an entity or
// component.
type GenericClause struct {
	Base
	Params []*GenericParam
}

func (*GenericClause) decl() {}

// PortClause is the ordered list of ports on an entity or component.
type PortClause struct {
	Base
	Ports []*Port
}

func (*PortClause) decl() {}

// SignalDecl declares one or more signals sharing a subtype and an
// optional default. A "bus" or "register" signal kind is accepted by the
// parser but not stored here, so the printer does not emit it.
type SignalDecl struct {
	Base
	Names   []string
	Subtype SubtypeIndication
	Default Expr
}

func (*SignalDecl) decl() {}

// VariableDecl declares one or more variables, optionally shared.
type VariableDecl struct {
	Base
	Shared  bool
	Names   []string
	Subtype SubtypeIndication
	Default Expr
}

func (*VariableDecl) decl() {}

// ConstantDecl declares one or more constants.
type ConstantDecl struct {
	Base
	Names   []string
	Subtype SubtypeIndication
	Default Expr // required by VHDL grammar but kept optional here for
	             // malformed-input resilience; the printer always emits it
	             // when non-nil.
}

func (*ConstantDecl) decl() {}

// ComponentDecl declares a component with its own generic/port clauses.
type ComponentDecl struct {
	Base
	Name    string
	Generic *GenericClause // nil when absent
	Port    *PortClause    // nil when absent
	HasIs   bool           // "component NAME is" vs "component NAME"
	EndName string         // repeated name on "end component NAME;", "" if absent
}

func (*ComponentDecl) decl() {}

// EnumLiteral is one literal of an enumeration type (an identifier or a
// character literal).
type EnumLiteral struct {
	Text string
}

// TypeDecl declares a type. Exactly one of the Kind-selected fields is
// populated; Opaque holds the verbatim text for type definitions this
// repository does not model structurally (spec.md §3.4 "opaque text").
type TypeKind int

const (
	TypeEnum TypeKind = iota
	TypeRecord
	TypeArray
	TypeAccess
	TypeFile
	TypeOpaque
)

type RecordElement struct {
	Names   []string
	Subtype SubtypeIndication
}

type TypeDecl struct {
	Base
	Name string
	Kind TypeKind

	EnumLiterals []EnumLiteral    // TypeEnum
	RecordElems  []RecordElement  // TypeRecord
	ArrayIndex   []Expr           // TypeArray: index range(s) or "natural range <>"
	ArrayElem    *SubtypeIndication // TypeArray: element subtype
	AccessOf     *SubtypeIndication // TypeAccess
	FileOf       *SubtypeIndication // TypeFile
	OpaqueText   string             // TypeOpaque: verbatim definition text
}

func (*TypeDecl) decl() {}

// SubtypeDecl declares a subtype alias for a subtype indication.
type SubtypeDecl struct {
	Base
	Name    string
	Subtype SubtypeIndication
}

func (*SubtypeDecl) decl() {}

// AliasDecl declares an alias for a name (spec.md §9 Open Question 3:
// implemented, see SPEC_FULL.md §3).
type AliasDecl struct {
	Base
	Name     string
	Subtype  *SubtypeIndication // nil when untyped
	Target   Expr
}

func (*AliasDecl) decl() {}

// AttributeDecl declares an attribute name and its type (spec.md §9 Open
// Question 3: implemented).
type AttributeDecl struct {
	Base
	Name    string
	Subtype SubtypeIndication
}

func (*AttributeDecl) decl() {}

// SubprogramDecl is a function or procedure declaration (signature only;
// this repository does not model subprogram bodies structurally — they are
// rare in formatting-focused fixtures and spec.md §3.4 lists only the
// declaration shape).
type SubprogramDecl struct {
	Base
	IsFunction bool
	Name       string
	Params     []*GenericParam // reused shape: name list + subtype + default
	ReturnType string          // function only
}

func (*SubprogramDecl) decl() {}

// OpaqueDecl is a declaration variant this repository does not model
// structurally at all (disconnect specifications, group templates — spec.md
// §9 Open Question 3). The visitor emits OpaqueText verbatim and still
// carries the node's trivia, so nothing is lost.
type OpaqueDecl struct {
	Base
	OpaqueText string
}

func (*OpaqueDecl) decl() {}
