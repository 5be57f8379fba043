// Package testbed checks the core against wazero, the reference runtime
// this project embeds elsewhere: both sides instantiate the same
// hand-encoded module and must agree on every observable memory behavior.
package testbed

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasm-core/memory"
	"github.com/wippyai/wasm-core/types"
)

func memModule(limits types.Limits) []byte {
	return types.EncodeModule(nil, []types.MemoryType{{Limits: limits}})
}

// instantiate runs the module under wazero and returns its memory.
func instantiate(t *testing.T, bin []byte) api.Memory {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	t.Cleanup(func() { r.Close(ctx) })

	mod, err := r.Instantiate(ctx, bin)
	if err != nil {
		t.Fatalf("wazero instantiate: %v", err)
	}
	mem := mod.Memory()
	if mem == nil {
		t.Fatal("wazero module has no memory")
	}
	return mem
}

// ours decodes the same module through this core and returns its memory.
func ours(t *testing.T, bin []byte) *memory.Instance {
	t.Helper()
	_, memTypes, err := types.DecodeModuleTypes(bin)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(memTypes) != 1 {
		t.Fatalf("decoded %d memories, want 1", len(memTypes))
	}
	m := memory.NewInstanceWithDefaults(memTypes[0])
	if !m.Valid() {
		t.Fatal("memory instance invalid")
	}
	t.Cleanup(m.Close)
	return m
}

func TestInitialSizeAgreement(t *testing.T) {
	for _, min := range []uint64{0, 1, 2, 5} {
		bin := memModule(types.NewLimits(min))
		theirs := instantiate(t, bin)
		mine := ours(t, bin)

		if uint64(theirs.Size()) != mine.Pages()*memory.PageSize {
			t.Errorf("min %d: wazero size = %d bytes, ours = %d bytes",
				min, theirs.Size(), mine.Pages()*memory.PageSize)
		}
	}
}

func TestGrowAgreement(t *testing.T) {
	bin := memModule(types.NewLimitsWithMax(1, 3))
	theirs := instantiate(t, bin)
	mine := ours(t, bin)

	steps := []uint32{1, 1, 1, 0, 2}
	for i, delta := range steps {
		wantPrev, wantOK := theirs.Grow(delta)
		gotPrev := mine.Pages()
		gotOK := mine.GrowPage(uint64(delta))

		if gotOK != wantOK {
			t.Fatalf("step %d (grow %d): ours ok = %v, wazero ok = %v", i, delta, gotOK, wantOK)
		}
		if wantOK && gotPrev != uint64(wantPrev) {
			t.Fatalf("step %d (grow %d): ours previous pages = %d, wazero = %d", i, delta, gotPrev, wantPrev)
		}
		if uint64(theirs.Size()) != mine.Pages()*memory.PageSize {
			t.Fatalf("step %d: sizes diverged: wazero %d bytes, ours %d pages", i, theirs.Size(), mine.Pages())
		}
	}
}

func TestGrowWithoutMaxAgreement(t *testing.T) {
	// No declared max: both sides fall back to the index type's 65536-page
	// cap. Stay small, just check a plain grow agrees.
	bin := memModule(types.NewLimits(1))
	theirs := instantiate(t, bin)
	mine := ours(t, bin)

	wantPrev, wantOK := theirs.Grow(2)
	gotPrev := mine.Pages()
	gotOK := mine.GrowPage(2)
	if gotOK != wantOK || gotPrev != uint64(wantPrev) {
		t.Errorf("grow 2: ours (%d, %v), wazero (%d, %v)", gotPrev, gotOK, wantPrev, wantOK)
	}
}

func TestReadWriteAgreement(t *testing.T) {
	bin := memModule(types.NewLimits(1))
	theirs := instantiate(t, bin)
	mine := ours(t, bin)

	payload := []byte{0xEF, 0xBE, 0xAD, 0xDE, 0x01, 0x00, 0xFF}
	const off = 1021 // straddles an alignment boundary on purpose

	if !theirs.Write(off, payload) {
		t.Fatal("wazero write refused")
	}
	if err := mine.SetBytes(payload, off, 0, uint64(len(payload))); err != nil {
		t.Fatalf("our write: %v", err)
	}

	want, ok := theirs.Read(off, uint32(len(payload)))
	if !ok {
		t.Fatal("wazero read refused")
	}
	got, err := mine.Bytes(off, uint64(len(payload)))
	if err != nil {
		t.Fatalf("our read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("read back: ours % x, wazero % x", got, want)
	}

	// Typed path: a 32-bit store read back through the other runtime's
	// little-endian accessor.
	if err := memory.Store(mine, uint32(0xDEADBEEF), 2048, 4); err != nil {
		t.Fatal(err)
	}
	if !theirs.WriteUint32Le(2048, 0xDEADBEEF) {
		t.Fatal("wazero WriteUint32Le refused")
	}
	theirWord, _ := theirs.ReadUint32Le(2048)
	myWord, err := memory.Load[uint32](mine, 2048, 4)
	if err != nil {
		t.Fatal(err)
	}
	if myWord != theirWord {
		t.Errorf("typed word: ours %#x, wazero %#x", myWord, theirWord)
	}
}

func TestBoundaryAgreement(t *testing.T) {
	bin := memModule(types.NewLimits(1))
	theirs := instantiate(t, bin)
	mine := ours(t, bin)

	cases := []struct {
		name   string
		offset uint32
		length uint32
	}{
		{"last byte", memory.PageSize - 1, 1},
		{"full page", 0, memory.PageSize},
		{"zero length at end", memory.PageSize, 0},
		{"one past end", memory.PageSize, 1},
		{"straddle end", memory.PageSize - 2, 4},
		{"far out", memory.PageSize * 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, theirOK := theirs.Read(tc.offset, tc.length)
			_, err := mine.Bytes(uint64(tc.offset), uint64(tc.length))
			if myOK := err == nil; myOK != theirOK {
				t.Errorf("read(%d, %d): ours ok = %v, wazero ok = %v",
					tc.offset, tc.length, myOK, theirOK)
			}
		})
	}
}

func TestGrowKeepsContentsAgreement(t *testing.T) {
	bin := memModule(types.NewLimitsWithMax(1, 2))
	theirs := instantiate(t, bin)
	mine := ours(t, bin)

	seed := []byte("persistent")
	theirs.Write(12, seed)
	if err := mine.SetBytes(seed, 12, 0, uint64(len(seed))); err != nil {
		t.Fatal(err)
	}

	theirs.Grow(1)
	mine.GrowPage(1)

	want, _ := theirs.Read(12, uint32(len(seed)))
	got, err := mine.Bytes(12, uint64(len(seed)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) || !bytes.Equal(got, seed) {
		t.Errorf("after grow: ours %q, wazero %q, want %q", got, want, seed)
	}

	// Fresh pages are zero on both sides.
	theirByte, _ := theirs.ReadByte(memory.PageSize + 5)
	myBytes, err := mine.Bytes(memory.PageSize+5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if theirByte != 0 || myBytes[0] != 0 {
		t.Errorf("fresh page byte: ours %d, wazero %d, want 0", myBytes[0], theirByte)
	}
}
