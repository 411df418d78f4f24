package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// Sections which log below slog.LevelWarn. Records of other sections
// are only kept when they are warnings or errors.
var enabledSections = []string{
	"jtype",
	"parser",
	"rename",
	"records",
	"extend",
	"desugar",
	"infer",
}

var level = new(slog.LevelVar)

func init() {
	level.Set(slog.LevelWarn)
}

// SetLevel changes the level of DefaultLogger and of every logger derived from it
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel accepts the names understood by slog.Level.UnmarshalText,
// case-insensitively
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.ToUpper(s)))
	return l, err
}

var LoggerOpts = &slog.HandlerOptions{
	AddSource: false,
	Level:     level,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

// DefaultLogger writes to stderr, so that inferred types on stdout stay clean
var DefaultLogger = slog.New(&filteringHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})

var _ slog.Handler = &filteringHandler{}

type filteringHandler struct {
	underlying slog.Handler
	sections   []string
}

func isEnabledSection(name string) bool {
	return slices.ContainsFunc(enabledSections, func(section string) bool {
		return strings.HasPrefix(name, section)
	})
}

func (f filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.underlying.Enabled(ctx, level)
}

func (f filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return f.underlying.Handle(ctx, record)
	}
	// a section attached by With counts as well as one in the record
	wantSection := slices.ContainsFunc(f.sections, isEnabledSection)
	record.Attrs(func(attr slog.Attr) bool {
		wantSection = wantSection || attr.Key == "section" && isEnabledSection(attr.Value.String())
		return !wantSection
	})
	if !wantSection {
		return nil
	}
	return f.underlying.Handle(ctx, record)
}

func (f filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sections := slices.Clone(f.sections)
	for _, attr := range attrs {
		if attr.Key == "section" {
			sections = append(sections, attr.Value.String())
		}
	}
	return &filteringHandler{
		underlying: f.underlying.WithAttrs(attrs),
		sections:   sections,
	}
}

func (f filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{
		underlying: f.underlying.WithGroup(name),
		sections:   f.sections,
	}
}
