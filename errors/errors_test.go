package errors

import (
	"errors"
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
				Phase:  PhaseRuntime,
				Kind:   KindCastFailed,
				Path:   []string{"stack", "top"},
				Type:   "(ref 2)",
				Detail: "value does not match",
			},
			contains: []string{"[runtime]", "cast_failed", "stack.top", "(ref 2)", "value does not match"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLoad,
				Kind:  KindInvalidData,
			},
			contains: []string{"[load]", "invalid_data"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "allocation", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseRuntime,
		Kind:  KindOutOfBoundsMemory,
		Path:  []string{"foo"},
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseRuntime, Kind: KindOutOfBoundsMemory}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseLoad, Kind: KindOutOfBoundsMemory}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseRuntime, Kind: KindOutOfBoundsArray}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseRuntime, Kind: KindOutOfBoundsMemory}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseRuntime, KindCastFailed).
		Path("operand", "0").
		Type("(ref null 3)").
		Value(uint32(7)).
		Cause(cause).
		Detail("expected %s, got %s", "structref", "arrayref").
		Build()

	if err.Phase != PhaseRuntime {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseRuntime)
	}
	if err.Kind != KindCastFailed {
		t.Errorf("Kind = %v, want %v", err.Kind, KindCastFailed)
	}
	if len(err.Path) != 2 || err.Path[0] != "operand" || err.Path[1] != "0" {
		t.Errorf("Path = %v, want [operand 0]", err.Path)
	}
	if err.Type != "(ref null 3)" {
		t.Errorf("Type = %v, want '(ref null 3)'", err.Type)
	}
	if err.Value != uint32(7) {
		t.Errorf("Value = %v, want 7", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected structref, got arrayref" {
		t.Errorf("Detail = %v, want 'expected structref, got arrayref'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("MemoryOutOfBounds", func(t *testing.T) {
		err := MemoryOutOfBounds(65536, 4, 65535)
		if err.Kind != KindOutOfBoundsMemory {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBoundsMemory)
		}
		if err.Value != uint64(65536) {
			t.Errorf("Value = %v, want 65536", err.Value)
		}
		for _, s := range []string{"65536", "4", "65535"} {
			if !containsSubstring(err.Detail, s) {
				t.Errorf("Detail = %v, should contain %s", err.Detail, s)
			}
		}
	})

	t.Run("ArrayOutOfBounds", func(t *testing.T) {
		err := ArrayOutOfBounds(10, 5)
		if err.Kind != KindOutOfBoundsArray {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBoundsArray)
		}
		if err.Value != uint64(10) {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("LengthOutOfBounds", func(t *testing.T) {
		err := LengthOutOfBounds(8, 16, 12)
		if err.Kind != KindOutOfBoundsLength {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBoundsLength)
		}
		if !containsSubstring(err.Detail, "12") {
			t.Errorf("Detail = %v, should contain segment size", err.Detail)
		}
	})

	t.Run("NullAccess", func(t *testing.T) {
		err := NullAccess("array.len")
		if err.Kind != KindCastNullToNonNull {
			t.Errorf("Kind = %v, want %v", err.Kind, KindCastNullToNonNull)
		}
		if !containsSubstring(err.Detail, "array.len") {
			t.Errorf("Detail = %v, should contain operation name", err.Detail)
		}
	})

	t.Run("CastFailed", func(t *testing.T) {
		err := CastFailed("(ref 2)", "(ref 5)")
		if err.Kind != KindCastFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindCastFailed)
		}
		if err.Type != "(ref 2)" {
			t.Errorf("Type = %v, want '(ref 2)'", err.Type)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseRuntime, []string{"field"}, "struct", "array")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.Type != "struct" {
			t.Errorf("Type = %v, want 'struct'", err.Type)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(1024)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !containsSubstring(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain page count", err.Detail)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseLoad, "shared composite types")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("InvalidData", func(t *testing.T) {
		err := InvalidData(PhaseLoad, []string{"type", "3"}, "truncated field list")
		if err.Kind != KindInvalidData {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
		}
		if !containsSubstring(err.Error(), "type.3") {
			t.Errorf("Error = %v, should contain path", err.Error())
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseRuntime, "nil type table")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("Load", func(t *testing.T) {
		cause := errors.New("short read")
		err := Load("type section", cause)
		if err.Phase != PhaseLoad {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseLoad)
		}
		if !errors.Is(err.Unwrap(), cause) {
			t.Error("cause not preserved")
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseValidate, KindInvalidData, cause, "rec group")
		if err.Kind != KindInvalidData {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should find cause through Wrap")
		}
	})
}

func containsSubstring(s, substr string) bool {
	if len(substr) == 0 {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
