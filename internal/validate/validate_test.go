package validate

import (
	"errors"
	"testing"
)

type testPayload struct {
	Name  string `validate:"required,min=2,noAllRepeatingChars"`
	Email string `validate:"required,email"`
}

func Test_StructFields(t *testing.T) {
	err := StructFields(&testPayload{
		Name:  "Clay Mug",
		Email: "menna@example.com",
	})
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	err = StructFields(&testPayload{
		Name:  "C",
		Email: "not-an-email",
	})

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}

	if _, ok := fieldErrs["Name"]; !ok {
		t.Error("expected a Name error")
	}
	if _, ok := fieldErrs["Email"]; !ok {
		t.Error("expected an Email error")
	}
}

func Test_noAllRepeatingChars(t *testing.T) {
	err := StructFields(&testPayload{
		Name:  "aaaaaaaa",
		Email: "menna@example.com",
	})

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fieldErrs["Name"]; !ok {
		t.Error("expected a repeating chars name to fail")
	}

	// a single char is too short to be "all repeating"
	if err := StructFields(&struct {
		Value string `validate:"noAllRepeatingChars"`
	}{Value: "a"}); err != nil {
		t.Errorf("expected single char to pass, got %v", err)
	}
}
