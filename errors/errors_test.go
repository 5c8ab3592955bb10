package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Op:     "stackbox.New",
				Kind:   KindOccupied,
				GoType: "main.Widget",
				Detail: "slot already holds a live value",
			},
			contains: []string{"stackbox.New", "occupied", "main.Widget", "already holds"},
		},
		{
			name: "minimal error",
			err: &Error{
				Op:   "raw.Take",
				Kind: KindTypeMismatch,
			},
			contains: []string{"raw.Take", "type_mismatch"},
		},
		{
			name: "error with cause",
			err: &Error{
				Op:     "raw.Reserve",
				Kind:   KindAlignment,
				Detail: "storage is not 64-byte aligned",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"raw.Reserve", "alignment", "64-byte", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Op:    "stackbox.FromHeap",
		Kind:  KindNilPointer,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Consumed("stackbox.Box.Get", "int")

	if !errors.Is(err, &Error{Kind: KindConsumed}) {
		t.Error("expected match on Kind alone")
	}
	if !errors.Is(err, &Error{Kind: KindConsumed, Op: "stackbox.Box.Get"}) {
		t.Error("expected match on Kind and Op")
	}
	if errors.Is(err, &Error{Kind: KindConsumed, Op: "stackbox.Box.IntoInner"}) {
		t.Error("unexpected match on different Op")
	}
	if errors.Is(err, &Error{Kind: KindVacant}) {
		t.Error("unexpected match on different Kind")
	}
	if errors.Is(err, errors.New("plain")) {
		t.Error("unexpected match on non-structured error")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"Occupied", Occupied("op", "T"), KindOccupied},
		{"Vacant", Vacant("op", "T"), KindVacant},
		{"Consumed", Consumed("op", "T"), KindConsumed},
		{"Capacity", Capacity("op", 128, 64), KindCapacity},
		{"Misaligned", Misaligned("op", 8), KindAlignment},
		{"TypeMismatch", TypeMismatch("op", "int", "string"), KindTypeMismatch},
		{"Unsupported", Unsupported("op", "T", "contains pointers"), KindUnsupported},
		{"Nil", Nil("op", "slot"), KindNilPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Op != "op" {
				t.Errorf("op = %q, want %q", tt.err.Op, "op")
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestCapacity_Detail(t *testing.T) {
	err := Capacity("raw.Place", 24, 16)
	msg := err.Error()
	if !strings.Contains(msg, "24") || !strings.Contains(msg, "16") {
		t.Errorf("capacity message %q missing sizes", msg)
	}
}
