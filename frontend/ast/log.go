package ast

import (
	"context"
	"log/slog"
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
		slog.String("pos", RangeOf(l.Expr).String()),
		slog.String("name", l.Describe()),
	)
}

// ExprHandler is a slog.Handler capable of lazy-printing expression trees
func ExprHandler(underlying slog.Handler) slog.Handler {
	return &exprLogHandler{underlying: underlying}
}

func ExprLogger(underlying *slog.Logger) *slog.Logger {
	return slog.New(ExprHandler(underlying.Handler()))
}

type exprLogHandler struct {
	underlying slog.Handler
}

func (l *exprLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *exprLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
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
	return ExprHandler(l.underlying.WithAttrs(wrapped))
}

func (l *exprLogHandler) WithGroup(name string) slog.Handler {
	return ExprHandler(l.underlying.WithGroup(name))
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
