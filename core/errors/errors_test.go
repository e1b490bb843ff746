package errors

import "testing"

func TestDomainError(t *testing.T) {
	bare := NewDomain("sqrt", "")
	if bare.Error() != "sqrt(): domain error" {
		t.Errorf("bare message = %q", bare.Error())
	}
	if !Is(bare, ErrDomain) {
		t.Error("DomainError does not unwrap to ErrDomain")
	}

	detailed := NewDomain("replicate", "negative count")
	if detailed.Error() != "replicate(): domain error: negative count" {
		t.Errorf("detailed message = %q", detailed.Error())
	}

	var de *DomainError
	if !As(detailed, &de) || de.Func != "replicate" {
		t.Errorf("As failed: %v", de)
	}
}

func TestArityError(t *testing.T) {
	err := &ArityError{Func: "padl", Want: 2, Got: 3}
	want := "padl() takes exactly 2 arguments (3 given)"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	wrapped := Wrap(ErrUnknownFunction, "lookup foo")
	if !Is(wrapped, ErrUnknownFunction) {
		t.Error("wrapped error lost its sentinel")
	}
	if wrapped.Error() != "lookup foo: unknown function" {
		t.Errorf("wrapped message = %q", wrapped.Error())
	}
}
