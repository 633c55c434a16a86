package errs

import (
	"errors"
	"io"
	"testing"
)

func TestClassification(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		valid     bool
		notFound  bool
		transient bool
	}{
		{"validation", Invalid("pageSize", "must be >= 1"), true, false, false},
		{"not found", NotFound("task", "abc"), false, true, false},
		{"transient", Transient("list tasks", io.ErrUnexpectedEOF), false, false, true},
		{"plain", errors.New("x"), false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if IsValidation(tc.err) != tc.valid || IsNotFound(tc.err) != tc.notFound || IsTransient(tc.err) != tc.transient {
				t.Fatalf("misclassified %v", tc.err)
			}
		})
	}
	if !errors.Is(Transient("op", io.ErrUnexpectedEOF), io.ErrUnexpectedEOF) {
		t.Fatalf("transient must keep the cause")
	}
	if Transient("op", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
	var ve *ValidationError
	if !errors.As(Invalid("title", "required"), &ve) || ve.Field != "title" {
		t.Fatalf("expected ValidationError with field")
	}
}
