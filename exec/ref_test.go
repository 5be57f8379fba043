package exec

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/heap"
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// newTestTable builds the table the op tests share:
//
//	0: array (mut i8)
//	1: array (mut i32)
//	2: struct (field i32)
//	3: sub 2, struct (field i32) (field (mut i64)) (field (mut i8)) (field (mut (ref null 1)))
//	4: func (param i32) (result i32)
//	5: array (mut (ref null 2))
func newTestTable() *types.Table {
	i32 := types.NewValType(types.I32)
	return types.NewTable(
		types.NewSubType(true, nil, types.NewArrayComposite(
			types.NewFieldType(types.NewValType(types.I8), types.Var))),
		types.NewSubType(true, nil, types.NewArrayComposite(
			types.NewFieldType(i32, types.Var))),
		types.NewSubType(false, nil, types.NewStructComposite(
			types.NewFieldType(i32, types.Const))),
		types.NewSubType(true, []uint32{2}, types.NewStructComposite(
			types.NewFieldType(i32, types.Const),
			types.NewFieldType(types.NewValType(types.I64), types.Var),
			types.NewFieldType(types.NewValType(types.I8), types.Var),
			types.NewFieldType(types.NewIndexRefType(1, true), types.Var))),
		types.NewSubType(true, nil, types.NewFuncComposite(types.FuncType{
			Params:  []types.ValType{i32},
			Results: []types.ValType{i32},
		})),
		types.NewSubType(true, nil, types.NewArrayComposite(
			types.NewFieldType(types.NewIndexRefType(2, true), types.Var))),
	)
}

func isKind(err error, kind errors.Kind) bool {
	return stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: kind})
}

func TestRunRefNullIsNull(t *testing.T) {
	st := NewStack()

	RunRefNull(st, types.NewRefType(types.AnyRef, true))
	if got := st.Top().Ref(); !got.IsNull() {
		t.Fatal("pushed reference is not null")
	}
	RunRefIsNull(st)
	if st.Top().U32() != 1 {
		t.Errorf("ref.is_null on null = %d, want 1", st.Top().U32())
	}
	if st.Len() != 1 {
		t.Errorf("stack length = %d, want 1 (verdict replaces the ref)", st.Len())
	}

	st.SetTop(values.NewU32(7))
	RunRefI31(st)
	RunRefIsNull(st)
	if st.Top().U32() != 0 {
		t.Errorf("ref.is_null on i31 = %d, want 0", st.Top().U32())
	}
}

func TestRunRefAsNonNull(t *testing.T) {
	st := NewStack()

	RunRefNull(st, types.NewRefType(types.StructRef, true))
	if err := RunRefAsNonNull(st); !isKind(err, errors.KindCastNullToNonNull) {
		t.Errorf("ref.as_non_null on null error = %v, want cast null to non-null", err)
	}

	table := newTestTable()
	h := heap.New()
	st.SetTop(values.NewRef(h.NewStruct(table, 2).Ref()))
	before := st.Top().Ref()
	if err := RunRefAsNonNull(st); err != nil {
		t.Fatalf("ref.as_non_null error = %v", err)
	}
	after := st.Top().Ref()
	if after.Type.IsNullableRef() {
		t.Errorf("result type = %s, still nullable", after.Type)
	}
	if after.Handle != before.Handle {
		t.Error("handle changed across ref.as_non_null")
	}
}

func TestRunRefEq(t *testing.T) {
	table := newTestTable()
	h := heap.New()
	a := values.NewRef(h.NewStruct(table, 2).Ref())
	b := values.NewRef(h.NewStruct(table, 2).Ref())
	null := values.NewRef(values.NullRef(types.NewRefType(types.NullRef, true)))

	i31 := func(v uint32) values.Val {
		st := NewStack()
		st.Push(values.NewU32(v))
		RunRefI31(st)
		return st.Top()
	}

	tests := []struct {
		name string
		x, y values.Val
		want uint32
	}{
		{"same object", a, a, 1},
		{"different objects", a, b, 0},
		{"both null", null, null, 1},
		{"null and object", null, a, 0},
		{"equal i31 payloads", i31(5), i31(5), 1},
		{"unequal i31 payloads", i31(5), i31(6), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStack()
			st.Push(tt.x)
			st.Push(tt.y)
			RunRefEq(st)
			if got := st.Top().U32(); got != tt.want {
				t.Errorf("ref.eq = %d, want %d", got, tt.want)
			}
			if st.Len() != 1 {
				t.Errorf("stack length = %d, want 1", st.Len())
			}
		})
	}
}

func TestRunRefFunc(t *testing.T) {
	st := NewStack()
	RunRefFunc(st, 4, 99)

	r := st.Top().Ref()
	if r.IsNull() {
		t.Fatal("funcref is null")
	}
	if r.Handle.Kind != values.KindFunc || r.Handle.Index != 99 {
		t.Errorf("handle = %v, want func:99", r.Handle)
	}
	want := types.NewIndexRefType(4, false)
	if r.Type != want {
		t.Errorf("type = %s, want %s", r.Type, want)
	}
}

func TestRunRefTest(t *testing.T) {
	table := newTestTable()
	h := heap.New()
	sub := values.NewRef(h.NewStruct(table, 3).Ref())
	arr := values.NewRef(h.NewArray(table, 0, 1).Ref())
	nullNone := values.NewRef(values.NullRef(types.NewRefType(types.NullRef, true)))

	tests := []struct {
		name     string
		val      values.Val
		expected types.ValType
		want     uint32
	}{
		{"own type", sub, types.NewIndexRefType(3, false), 1},
		{"declared parent", sub, types.NewIndexRefType(2, true), 1},
		{"unrelated concrete", sub, types.NewIndexRefType(0, true), 0},
		{"abstract struct", sub, types.NewRefType(types.StructRef, false), 1},
		{"abstract any", sub, types.NewRefType(types.AnyRef, true), 1},
		{"abstract array on struct", sub, types.NewRefType(types.ArrayRef, true), 0},
		{"cross hierarchy", sub, types.NewRefType(types.FuncRef, true), 0},
		{"array under array", arr, types.NewRefType(types.ArrayRef, false), 1},
		{"null under nullable concrete", nullNone, types.NewIndexRefType(2, true), 1},
		{"null under non-nullable", nullNone, types.NewIndexRefType(2, false), 0},
		{"null under nullable abstract", nullNone, types.NewRefType(types.EqRef, true), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStack()
			st.Push(tt.val)
			RunRefTest(st, table, tt.expected)
			if got := st.Top().U32(); got != tt.want {
				t.Errorf("ref.test %s = %d, want %d", tt.expected, got, tt.want)
			}
		})
	}
}

func TestRunRefCast(t *testing.T) {
	table := newTestTable()
	h := heap.New()
	st := NewStack()

	ref := values.NewRef(h.NewStruct(table, 3).Ref())
	st.Push(ref)
	if err := RunRefCast(st, table, types.NewIndexRefType(2, true)); err != nil {
		t.Fatalf("upcast error = %v", err)
	}
	if st.Top() != ref {
		t.Error("successful cast disturbed the operand")
	}

	if err := RunRefCast(st, table, types.NewIndexRefType(0, true)); !isKind(err, errors.KindCastFailed) {
		t.Errorf("failed cast error = %v, want cast failed", err)
	}

	st.SetTop(values.NewRef(values.NullRef(types.NewRefType(types.NullRef, true))))
	if err := RunRefCast(st, table, types.NewIndexRefType(3, true)); err != nil {
		t.Errorf("null under nullable cast error = %v", err)
	}
	if err := RunRefCast(st, table, types.NewIndexRefType(3, false)); !isKind(err, errors.KindCastNullToNonNull) {
		t.Errorf("null under non-nullable cast error = %v, want cast null to non-null", err)
	}
}

func TestRunRefI31(t *testing.T) {
	tests := []struct {
		name    string
		in      uint32
		signed  bool
		wantI32 int32
	}{
		{"small value signed", 5, true, 5},
		{"small value unsigned", 5, false, 5},
		{"all ones signed", 0x7FFFFFFF, true, -1},
		{"all ones unsigned", 0x7FFFFFFF, false, 0x7FFFFFFF},
		{"bit 30 signed", 0x40000000, true, -1073741824},
		{"bit 30 unsigned", 0x40000000, false, 0x40000000},
		{"bit 31 masked off", 0x80000005, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStack()
			st.Push(values.NewU32(tt.in))
			RunRefI31(st)

			r := st.Top().Ref()
			if r.IsNull() {
				t.Fatal("ref.i31 produced a null")
			}
			want := types.NewRefType(types.I31Ref, false)
			if r.Type != want {
				t.Errorf("type = %s, want %s", r.Type, want)
			}

			if err := RunI31Get(st, tt.signed); err != nil {
				t.Fatalf("i31.get error = %v", err)
			}
			if got := st.Top().I32(); got != tt.wantI32 {
				t.Errorf("i31.get = %d, want %d", got, tt.wantI32)
			}
		})
	}

	t.Run("null traps", func(t *testing.T) {
		st := NewStack()
		RunRefNull(st, types.NewRefType(types.I31Ref, true))
		if err := RunI31Get(st, true); !isKind(err, errors.KindCastNullToNonNull) {
			t.Errorf("i31.get_s on null error = %v, want cast null to non-null", err)
		}
	})
}

func TestConvertRoundTrip(t *testing.T) {
	table := newTestTable()
	h := heap.New()
	st := NewStack()

	orig := values.NewRef(h.NewStruct(table, 3).Ref())
	st.Push(orig)

	RunExternConvertAny(st)
	ext := st.Top().Ref()
	if ext.IsNull() {
		t.Fatal("externalized reference is null")
	}
	if want := types.NewRefType(types.ExternRef, false); ext.Type != want {
		t.Errorf("externalized type = %s, want %s", ext.Type, want)
	}

	RunAnyConvertExtern(st)
	back := st.Top().Ref()
	if want := types.NewRefType(types.AnyRef, false); back.Type != want {
		t.Errorf("internalized type = %s, want %s", back.Type, want)
	}

	// Identity survives the round trip.
	st.Push(orig)
	RunRefEq(st)
	if st.Top().U32() != 1 {
		t.Error("round trip broke ref.eq identity")
	}
}

func TestConvertNull(t *testing.T) {
	st := NewStack()

	RunRefNull(st, types.NewRefType(types.NullRef, true))
	RunExternConvertAny(st)
	r := st.Top().Ref()
	if !r.IsNull() {
		t.Fatal("null did not stay null")
	}
	if want := types.NewRefType(types.ExternRef, true); r.Type != want {
		t.Errorf("externalized null type = %s, want %s", r.Type, want)
	}

	RunAnyConvertExtern(st)
	r = st.Top().Ref()
	if !r.IsNull() {
		t.Fatal("null did not stay null")
	}
	if want := types.NewRefType(types.AnyRef, true); r.Type != want {
		t.Errorf("internalized null type = %s, want %s", r.Type, want)
	}
}
