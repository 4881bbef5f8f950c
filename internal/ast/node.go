package ast

import (
	"sapling/internal/source"
	"sapling/internal/token"
)

// NodeKind identifies the variant of a Node.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindFnDecl
	KindFnCall
	KindLiteral
	KindIdent
	KindOperator
)

var nodeKindNames = [...]string{
	KindInvalid:  "Invalid",
	KindFnDecl:   "FnDecl",
	KindFnCall:   "FnCall",
	KindLiteral:  "Literal",
	KindIdent:    "Ident",
	KindOperator: "Operator",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// LiteralKind distinguishes string and number literals.
type LiteralKind uint8

const (
	LitString LiteralKind = iota
	LitNumber
)

func (k LiteralKind) String() string {
	if k == LitNumber {
		return "Number"
	}
	return "String"
}

// Node is one of *FnDecl, *FnCall, *Literal, *Ident or *Operator.
// The set is closed: only this package implements it.
type Node interface {
	Kind() NodeKind
	Children() []Node
	Pos() token.Location
	Span() source.Span
	node()
}

// FnDecl: объявление функции. Args хранит объявленные параметры (Ident), Body хранит тело.
type FnDecl struct {
	Name string
	Args []Node
	Body []Node
	Loc  token.Location
	Sp   source.Span
}

// FnCall: вызов функции с аргументами в исходном порядке.
type FnCall struct {
	Name string
	Args []Node
	Loc  token.Location
	Sp   source.Span
}

// Literal keeps the lexeme verbatim; string values include their quotes.
type Literal struct {
	LitKind LiteralKind
	Value   string
	Loc     token.Location
	Sp      source.Span
}

type Ident struct {
	Name string
	Loc  token.Location
	Sp   source.Span
}

type Operator struct {
	Symbol string
	Loc    token.Location
	Sp     source.Span
}

func (*FnDecl) Kind() NodeKind   { return KindFnDecl }
func (*FnCall) Kind() NodeKind   { return KindFnCall }
func (*Literal) Kind() NodeKind  { return KindLiteral }
func (*Ident) Kind() NodeKind    { return KindIdent }
func (*Operator) Kind() NodeKind { return KindOperator }

// Children returns the body of a declaration and the arguments of a call.
func (n *FnDecl) Children() []Node { return n.Body }
func (n *FnCall) Children() []Node { return n.Args }
func (*Literal) Children() []Node  { return nil }
func (*Ident) Children() []Node    { return nil }
func (*Operator) Children() []Node { return nil }

func (n *FnDecl) Pos() token.Location   { return n.Loc }
func (n *FnCall) Pos() token.Location   { return n.Loc }
func (n *Literal) Pos() token.Location  { return n.Loc }
func (n *Ident) Pos() token.Location    { return n.Loc }
func (n *Operator) Pos() token.Location { return n.Loc }

func (n *FnDecl) Span() source.Span   { return n.Sp }
func (n *FnCall) Span() source.Span   { return n.Sp }
func (n *Literal) Span() source.Span  { return n.Sp }
func (n *Ident) Span() source.Span    { return n.Sp }
func (n *Operator) Span() source.Span { return n.Sp }

func (*FnDecl) node()   {}
func (*FnCall) node()   {}
func (*Literal) node()  {}
func (*Ident) node()    {}
func (*Operator) node() {}
