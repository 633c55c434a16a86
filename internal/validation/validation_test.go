package validation

import (
	"errors"
	"testing"

	"github.com/nabeel-hussain/ToDoApp/internal/errs"
)

func TestValidateCreate(t *testing.T) {
	cases := []struct {
		body    string
		wantErr bool
		field   string
	}{
		{`{"title":"Buy Milk"}`, false, ""},
		{`{"title":"Buy Milk","description":null,"dueDate":"2024-12-18T00:00:00Z"}`, false, ""},
		{`{"title":"x","dueDate":null}`, false, ""},
		{`{}`, true, "body"},
		{`{"title":""}`, true, "title"},
		{`{"title":"   "}`, true, "title"},
		{`{"title":42}`, true, "title"},
		{`{"title":"ok","description":7}`, true, "description"},
		{`[1,2]`, true, "body"},
		{`{"title":`, true, "body"},
	}
	for _, tc := range cases {
		err := ValidateCreate([]byte(tc.body))
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: err=%v wantErr=%v", tc.body, err, tc.wantErr)
		}
		if err == nil {
			continue
		}
		if !errs.IsValidation(err) {
			t.Fatalf("%s: not a validation error: %v", tc.body, err)
		}
		var ve *errs.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("%s: field=%q want %q (%v)", tc.body, ve.Field, tc.field, err)
		}
	}
}

func TestValidateCreateTitleLength(t *testing.T) {
	long := make([]byte, 257)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateCreate([]byte(`{"title":"` + string(long) + `"}`)); err == nil {
		t.Fatalf("257-char title accepted")
	}
	if err := ValidateCreate([]byte(`{"title":"` + string(long[:256]) + `"}`)); err != nil {
		t.Fatalf("256-char title rejected: %v", err)
	}
}

func TestValidateUpdate(t *testing.T) {
	const id = "0b7c2f0e-5a53-4c39-9a4f-3f1b6f7f9c11"
	cases := []struct {
		body    string
		wantErr bool
	}{
		{`{"id":"` + id + `","title":"t","isDone":true}`, false},
		{`{"id":"` + id + `","title":"t","isDone":false,"description":"d","dueDate":null,"creationDate":"2024-01-01T00:00:00Z"}`, false},
		{`{"id":"not-a-uuid","title":"t","isDone":true}`, true},
		{`{"title":"t","isDone":true}`, true},
		{`{"id":"` + id + `","title":"t"}`, true},
		{`{"id":"` + id + `","title":"t","isDone":"yes"}`, true},
	}
	for _, tc := range cases {
		if err := ValidateUpdate([]byte(tc.body)); (err != nil) != tc.wantErr {
			t.Fatalf("%s: err=%v wantErr=%v", tc.body, err, tc.wantErr)
		}
	}
}
