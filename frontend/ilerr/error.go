package ilerr

import (
	"fmt"
	"log/slog"
	"strings"
)

// Errors accumulates the IleError values of a run.
// A nil *Errors is a valid, empty collection.
type Errors struct {
	errs []IleError
}

func (r *Errors) With(err ...IleError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil || len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []IleError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// First returns the earliest error, or nil
func (r *Errors) First() IleError {
	if !r.HasError() {
		return nil
	}
	return r.errs[0]
}

// Error joins the messages of every error, one per line
func (r *Errors) Error() string {
	msgs := make([]string, 0, len(r.Errors()))
	for _, err := range r.Errors() {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
