package lift

import (
	"errors"
	"strings"

	"go.uber.org/multierr"
)

// ============================================================
// Errors
// ============================================================

var (
	ErrInvalidConfig      = errors.New("invalid lift config")
	ErrInvalidArrangement = errors.New("invalid lift arrangement")
)

// ValidationError перечисляет все нарушенные правила конфигурации лифта.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string {
	return "lift config validation failed:" + bulletList(e.err)
}

// Problems returns one human-readable message per violated rule, in check order.
func (e *ValidationError) Problems() []string { return messages(e.err) }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidConfig }

func (e *ValidationError) Unwrap() []error { return multierr.Errors(e.err) }

// ArrangementError перечисляет нарушения правил расстановки лифтов в группе.
type ArrangementError struct {
	err error
}

func (e *ArrangementError) Error() string {
	return "lift arrangement validation failed:" + bulletList(e.err)
}

// NewArrangementError собирает готовые сообщения в одну ошибку расстановки.
func NewArrangementError(msgs ...string) error {
	var pr problems
	for _, m := range msgs {
		pr.err = multierr.Append(pr.err, errors.New(m))
	}
	if pr.err == nil {
		return nil
	}
	return &ArrangementError{err: pr.err}
}

func (e *ArrangementError) Problems() []string { return messages(e.err) }

func (e *ArrangementError) Is(target error) bool { return target == ErrInvalidArrangement }

func (e *ArrangementError) Unwrap() []error { return multierr.Errors(e.err) }

// Problems extracts the rule messages from any error that carries a problem list.
// Any other error is returned as a single message.
func Problems(err error) []string {
	if err == nil {
		return nil
	}
	var pl interface{ Problems() []string }
	if errors.As(err, &pl) {
		return pl.Problems()
	}
	return []string{err.Error()}
}

func messages(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func bulletList(err error) string {
	var b strings.Builder
	for _, msg := range messages(err) {
		b.WriteString("\n  - ")
		b.WriteString(msg)
	}
	return b.String()
}
