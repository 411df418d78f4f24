package ir

import (
	"context"
	"log/slog"

	"github.com/cottand/jtype/frontend/ast"
)

// Slog wraps an Expr as a slog.LogValuer to not render expression strings
// unless they definitely need to be logged
func Slog(expr Expr) slog.LogValuer {
	return exprLogValuer{expr}
}

type exprLogValuer struct{ Expr }

func (l exprLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("str", ExprString(l.Expr)),
		slog.String("pos", ast.RangeOf(l.Expr).String()),
		slog.String("name", l.Describe()),
	)
}

// SlogHandler is a slog.Handler capable of lazy-printing expression trees
func SlogHandler(underlying slog.Handler) slog.Handler {
	return &exprLogHandler{underlying: underlying}
}

type exprLogHandler struct {
	underlying slog.Handler
}

func (l *exprLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *exprLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	// for each attr, add it wrapped in Slog if it is an Any and then an Expr
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(wrapExprAttr(attr))
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *exprLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		wrapped[i] = wrapExprAttr(attr)
	}
	return SlogHandler(l.underlying.WithAttrs(wrapped))
}

func (l *exprLogHandler) WithGroup(name string) slog.Handler {
	return SlogHandler(l.underlying.WithGroup(name))
}

func wrapExprAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	if expr, ok := attr.Value.Any().(Expr); ok {
		attr.Value = slog.AnyValue(Slog(expr))
	}
	return attr
}
