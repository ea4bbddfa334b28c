package drawing

import (
	"errors"
	"strings"
)

var (
	// ErrMalformedRequest is a request that could not be decoded or has no body for its kind.
	ErrMalformedRequest = errors.New("malformed drawing request")
	// ErrInvalidRequest is a well-formed request that breaks lift, arrangement or section rules.
	ErrInvalidRequest = errors.New("invalid drawing request")
)

// RequestError собирает нарушения всех лифтов запроса.
// Unwrap отдаёт исходные ошибки, так что errors.Is(err, lift.ErrInvalidConfig) тоже работает.
type RequestError struct {
	problems []string
	causes   []error
}

func (e *RequestError) add(prefix string, err error, msgs []string) {
	for _, m := range msgs {
		e.problems = append(e.problems, prefix+m)
	}
	e.causes = append(e.causes, err)
}

func (e *RequestError) orNil() error {
	if len(e.problems) == 0 {
		return nil
	}
	return e
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString("drawing request is invalid:")
	for _, p := range e.problems {
		b.WriteString("\n  - ")
		b.WriteString(p)
	}
	return b.String()
}

func (e *RequestError) Problems() []string { return e.problems }

func (e *RequestError) Is(target error) bool { return target == ErrInvalidRequest }

func (e *RequestError) Unwrap() []error { return e.causes }
