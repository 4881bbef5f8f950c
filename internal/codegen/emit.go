package codegen

import (
	"strings"

	"sapling/internal/ast"
)

type Options struct {
	// Builtins переопределяет или дополняет DefaultBuiltins.
	Builtins map[string]string
	// EmitParams renders declared parameters in function signatures.
	EmitParams bool
}

type Emitter struct {
	opts     Options
	builtins map[string]string
	buf      strings.Builder
}

func NewEmitter(opts Options) *Emitter {
	return &Emitter{
		opts:     opts,
		builtins: builtinMap(opts.Builtins),
	}
}

// Generate renders the forest as JavaScript. Roots are emitted back to back.
func Generate(forest []ast.Node, opts Options) (string, error) {
	e := NewEmitter(opts)
	for _, n := range forest {
		if err := e.emit(n); err != nil {
			return "", err
		}
	}
	return e.buf.String(), nil
}

// Resolve returns the target name for a called function.
func (e *Emitter) Resolve(name string) string {
	if mapped, ok := e.builtins[name]; ok {
		return mapped
	}
	return name
}

func (e *Emitter) emit(n ast.Node) error {
	switch n := n.(type) {
	case *ast.FnDecl:
		return e.emitFnDecl(n)
	case *ast.FnCall:
		return e.emitFnCall(n)
	case *ast.Literal:
		e.buf.WriteString(n.Value)
		return nil
	default:
		return &UnhandledNodeError{Node: n}
	}
}

func (e *Emitter) emitFnDecl(n *ast.FnDecl) error {
	e.buf.WriteString("function ")
	e.buf.WriteString(n.Name)
	e.buf.WriteByte('(')
	if e.opts.EmitParams {
		if err := e.emitParams(n.Args); err != nil {
			return err
		}
	}
	e.buf.WriteString(") {\n")
	for _, child := range n.Body {
		if err := e.emit(child); err != nil {
			return err
		}
		e.buf.WriteByte('\n')
	}
	e.buf.WriteString("}\n")
	return nil
}

func (e *Emitter) emitParams(args []ast.Node) error {
	for i, arg := range args {
		id, ok := arg.(*ast.Ident)
		if !ok {
			return &UnhandledNodeError{Node: arg}
		}
		if i > 0 {
			e.buf.WriteString(", ")
		}
		e.buf.WriteString(id.Name)
	}
	return nil
}

// Аргументы склеиваются без разделителя.
func (e *Emitter) emitFnCall(n *ast.FnCall) error {
	e.buf.WriteString(e.Resolve(n.Name))
	e.buf.WriteByte('(')
	for _, arg := range n.Args {
		if err := e.emit(arg); err != nil {
			return err
		}
	}
	e.buf.WriteByte(')')
	return nil
}
