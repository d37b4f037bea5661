// Package expect checks the error a spec body ended with against an
// expected error identity, type, and message.
package expect

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Expectation describes the error a spec is expected to end with. At least
// one of Target, Type, or Message should be set.
type Expectation struct {
	// Target matches via errors.Is.
	Target error
	// Type matches via errors.As against a value of this type.
	Type reflect.Type
	// Message is a substring the error text must contain.
	Message string
}

// ErrorIs expects an error matching target.
func ErrorIs(target error) Expectation {
	return Expectation{Target: target}
}

// ErrorAs expects an error assignable to E somewhere in its chain.
func ErrorAs[E error]() Expectation {
	return Expectation{Type: reflect.TypeFor[E]()}
}

// Any expects any non-nil error.
func Any() Expectation {
	return Expectation{}
}

// WithMessage returns a copy of e that also requires the error text to
// contain substr.
func (e Expectation) WithMessage(substr string) Expectation {
	e.Message = substr
	return e
}

// String describes the expected error.
func (e Expectation) String() string {
	var parts []string
	if e.Target != nil {
		parts = append(parts, fmt.Sprintf("%q", e.Target))
	}
	if e.Type != nil {
		parts = append(parts, e.Type.String())
	}
	if e.Message != "" {
		parts = append(parts, fmt.Sprintf("with message containing %q", e.Message))
	}
	if len(parts) == 0 {
		return "any error"
	}
	return strings.Join(parts, " ")
}

// Check returns nil when err meets the expectation and a descriptive error
// otherwise.
func (e Expectation) Check(err error) error {
	if err == nil {
		return fmt.Errorf("expected error %s but none was returned", e)
	}
	if e.Target != nil && !errors.Is(err, e.Target) {
		return fmt.Errorf("expected error matching %q but got %T: %v", e.Target, err, err)
	}
	if e.Type != nil && !matchesType(err, e.Type) {
		return fmt.Errorf("expected error matching %s but got %T: %v", e.Type, err, err)
	}
	if e.Message != "" && !strings.Contains(err.Error(), e.Message) {
		return fmt.Errorf("expected error message containing %q but was %q", e.Message, err.Error())
	}
	return nil
}

func matchesType(err error, typ reflect.Type) bool {
	target := reflect.New(typ)
	return errors.As(err, target.Interface())
}
