package lexer

import (
	"sapling/internal/diag"
	"sapling/internal/source"
)

type Options struct {
	Reporter diag.Reporter // при nil предупреждения теряются, токены всё равно выдаются
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	diag.Warn(lx.opts.Reporter, code, sp, msg)
}
