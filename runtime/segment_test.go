package runtime

import (
	"testing"

	"github.com/wippyai/wasm-core/exec"
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

var (
	_ exec.DataSegment = (*DataInstance)(nil)
	_ exec.ElemSegment = (*ElementInstance)(nil)
)

func TestDataInstanceLoadPacked(t *testing.T) {
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(i + 1)
	}
	d := NewDataInstance(b)

	cases := []struct {
		name   string
		offset uint64
		width  uint32
		want   values.Val
	}{
		{"byte", 0, 1, values.NewU64(0x01)},
		{"byte offset", 3, 1, values.NewU64(0x04)},
		{"halfword", 0, 2, values.NewU64(0x0201)},
		{"word", 0, 4, values.NewU64(0x04030201)},
		{"doubleword", 0, 8, values.NewU64(0x0807060504030201)},
		{"v128", 0, 16, values.NewV128(0x0807060504030201, 0x100F0E0D0C0B0A09)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.LoadPacked(tc.offset, tc.width); got != tc.want {
				t.Errorf("LoadPacked(%d, %d) = %v, want %v", tc.offset, tc.width, got, tc.want)
			}
		})
	}
}

func TestDataInstanceClear(t *testing.T) {
	d := NewDataInstance([]byte{1, 2, 3})
	d.Clear()
	if d.Bytes() != nil || d.Size() != 0 {
		t.Errorf("after Clear: Bytes() = %v, Size() = %d, want empty", d.Bytes(), d.Size())
	}
}

func TestElementInstanceClear(t *testing.T) {
	refs := []values.Ref{values.NullRef(types.NewRefType(types.AnyRef, true))}
	e := NewElementInstance(refs)
	if len(e.Refs()) != 1 {
		t.Fatalf("Refs() length = %d, want 1", len(e.Refs()))
	}
	e.Clear()
	if e.Refs() != nil {
		t.Errorf("after Clear: Refs() = %v, want nil", e.Refs())
	}
}

// The segments a module instance owns are what the executor's segment
// operations consume; run the real ops against them.
func TestSegmentsDriveExecOps(t *testing.T) {
	rt := New(Config{})
	table := testTable()
	mod, err := rt.NewModuleInstance("seg", table,
		[]types.MemoryType{{Limits: types.NewLimits(1)}},
		[][]byte{{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		nil)
	if err != nil {
		t.Fatal(err)
	}
	defer mod.Close()

	t.Run("array.new_data", func(t *testing.T) {
		st := exec.NewStack()
		st.Push(values.NewU32(2))
		st.Push(values.NewU32(4))
		if err := exec.RunArrayNewData(rt.Heap(), st, table, 0, mod.Data(0)); err != nil {
			t.Fatalf("array.new_data error = %v", err)
		}
		inst := rt.Heap().Array(st.Top().Ref().Handle)
		for i, want := range []uint32{2, 3, 4, 5} {
			if got := inst.Get(uint32(i)).U32(); got != want {
				t.Errorf("element %d = %d, want %d", i, got, want)
			}
		}
	})

	t.Run("memory.init", func(t *testing.T) {
		st := exec.NewStack()
		st.Push(values.NewU32(64))
		st.Push(values.NewU32(0))
		st.Push(values.NewU32(4))
		if err := exec.RunMemoryInit(st, mod.Memory(0), mod.Data(0)); err != nil {
			t.Fatalf("memory.init error = %v", err)
		}
		b, err := mod.Memory(0).Bytes(64, 4)
		if err != nil {
			t.Fatal(err)
		}
		for i, want := range []byte{0, 1, 2, 3} {
			if b[i] != want {
				t.Errorf("byte %d = %d, want %d", i, b[i], want)
			}
		}
	})

	t.Run("array.new_elem and elem.drop", func(t *testing.T) {
		elem := mod.AddElement([]values.Ref{
			rt.Heap().NewStruct(table, 1).Ref(),
			rt.Heap().NewStruct(table, 1).Ref(),
			rt.Heap().NewStruct(table, 1).Ref(),
		})

		st := exec.NewStack()
		st.Push(values.NewU32(0))
		st.Push(values.NewU32(2))
		if err := exec.RunArrayNewElem(rt.Heap(), st, table, 2, mod.Elem(0)); err != nil {
			t.Fatalf("array.new_elem error = %v", err)
		}
		inst := rt.Heap().Array(st.Top().Ref().Handle)
		if inst.Len() != 2 || inst.Get(0) != values.NewRef(elem.Refs()[0]) {
			t.Error("array does not hold the segment's references")
		}

		exec.RunElemDrop(mod.Elem(0))
		if len(elem.Refs()) != 0 {
			t.Fatal("elem.drop did not clear the segment")
		}
	})

	t.Run("data.drop", func(t *testing.T) {
		exec.RunDataDrop(mod.Data(0))
		if mod.Data(0).Size() != 0 {
			t.Error("data.drop did not clear the segment")
		}
	})
}
