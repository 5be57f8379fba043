package memory

import (
	"unsafe"

	"go.uber.org/zap"

	wasmcore "github.com/wippyai/wasm-core"
	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/types"
)

const (
	// PageSize is the wasm page size in bytes.
	PageSize = 65536

	// DefaultPageLimit caps 32-bit memories at the 4 GiB address space.
	DefaultPageLimit = 65536

	// DefaultPageLimit64 caps 64-bit memories.
	DefaultPageLimit64 = 1 << 48
)

// Options configures memory instance behavior.
type Options struct {
	// PageLimit is the hard page cap the embedder imposes on top of the
	// declared limits. Zero means the address-space default for the
	// memory's index type.
	PageLimit uint64
	// Allocator provides the backing buffers. Nil means the Go-heap
	// default.
	Allocator wasmcore.Allocator
}

// DefaultOptions returns default memory configuration.
func DefaultOptions() Options {
	return Options{}
}

// Instance is one linear memory. The buffer length is always the current
// page count times PageSize.
//
// Instances are not internally synchronized. Shared memories need external
// serialization; this core carries the Shared flag through but implements
// no atomics.
type Instance struct {
	alloc wasmcore.Allocator
	data  []byte
	mt    types.MemoryType
	limit uint64
	valid bool
}

// NewInstance creates a linear memory for the given type. If the declared
// minimum exceeds the hard page limit, or the allocator cannot provide the
// initial buffer, the failure is logged and the returned instance reports
// Valid() == false: it rejects growth and every non-empty access fails the
// bound check.
func NewInstance(mt types.MemoryType, opts Options) *Instance {
	limit := opts.PageLimit
	if limit == 0 {
		limit = mt.PageLimit()
	}
	alloc := opts.Allocator
	if alloc == nil {
		alloc = wasmcore.HeapAllocator{}
	}

	m := &Instance{alloc: alloc, mt: mt, limit: limit}
	if mt.Limits.Min > limit {
		Logger().Error("create memory instance failed: min exceeds page limit",
			zap.Uint64("min", mt.Limits.Min),
			zap.Uint64("page_limit", limit))
		return m
	}
	m.data = alloc.Allocate(mt.Limits.Min)
	if m.data == nil && mt.Limits.Min > 0 {
		Logger().Error("create memory instance failed: no usable memory",
			zap.Uint64("pages", mt.Limits.Min))
		return m
	}
	m.valid = true
	return m
}

// NewInstanceWithDefaults creates a linear memory with default options.
func NewInstanceWithDefaults(mt types.MemoryType) *Instance {
	return NewInstance(mt, DefaultOptions())
}

// Valid reports whether construction succeeded. Invalid instances stay
// usable as values; every access fails its bound check.
func (m *Instance) Valid() bool {
	return m.valid
}

// Shared reports whether the memory was declared shared.
func (m *Instance) Shared() bool {
	return m.mt.Limits.Shared
}

// Type returns the memory type with its current minimum.
func (m *Instance) Type() types.MemoryType {
	return m.mt
}

// Pages returns the current page count.
func (m *Instance) Pages() uint64 {
	return uint64(len(m.data)) / PageSize
}

// PageLimit returns the hard page cap in effect.
func (m *Instance) PageLimit() uint64 {
	return m.limit
}

// CheckAccessBound reports whether [offset, offset+length) lies inside the
// current buffer. The addition is overflow-guarded.
func (m *Instance) CheckAccessBound(offset, length uint64) bool {
	bound := uint64(len(m.data))
	return ^uint64(0)-offset >= length && offset+length <= bound
}

// BoundIdx returns the last valid byte index, or 0 for an empty memory.
func (m *Instance) BoundIdx() uint64 {
	if len(m.data) > 0 {
		return uint64(len(m.data)) - 1
	}
	return 0
}

// GrowPage grows the memory by count pages. Growing by zero always
// succeeds. Returns false without mutating when the result would pass the
// declared maximum, the hard page limit, or the allocator refuses. On
// success, previously obtained views stay pointed at the old buffer.
func (m *Instance) GrowPage(count uint64) bool {
	if count == 0 {
		return true
	}
	if !m.valid {
		return false
	}

	maxCaped := m.mt.PageLimit()
	min := m.mt.Limits.Min
	if m.mt.Limits.Max != nil && *m.mt.Limits.Max < maxCaped {
		maxCaped = *m.mt.Limits.Max
	}
	if min > maxCaped || count > maxCaped-min {
		return false
	}
	if min > m.limit || count > m.limit-min {
		Logger().Error("memory grow page failed: exceeded page limit",
			zap.Uint64("page_limit", m.limit))
		return false
	}

	newData := m.alloc.Resize(m.data, min, min+count)
	if newData == nil {
		return false
	}
	m.data = newData
	m.mt.Limits.Min = min + count
	return true
}

// Close releases the backing buffer. The instance becomes invalid; every
// later access fails its bound check.
func (m *Instance) Close() {
	if m.data != nil {
		m.alloc.Release(m.data, m.mt.Limits.Min)
	}
	m.data = nil
	m.valid = false
}

// Bytes returns the slice [offset, offset+length). The view aliases the
// buffer: writes through it land in memory, and it goes stale on the next
// successful GrowPage or Close. Zero length returns an empty slice.
func (m *Instance) Bytes(offset, length uint64) ([]byte, error) {
	if !m.CheckAccessBound(offset, length) {
		return nil, m.outOfBounds(offset, length)
	}
	return m.data[offset : offset+length : offset+length], nil
}

// SetBytes copies slice[start : start+length) to memory at offset. The
// source range is validated against the slice as well as the destination
// against memory.
func (m *Instance) SetBytes(slice []byte, offset, start, length uint64) error {
	if !m.CheckAccessBound(offset, length) {
		return m.outOfBounds(offset, length)
	}
	if ^uint64(0)-start < length || start+length > uint64(len(slice)) {
		return m.outOfBounds(offset, length)
	}
	if length > 0 {
		copy(m.data[offset:offset+length], slice[start:start+length])
	}
	return nil
}

// FillBytes sets [offset, offset+length) to val.
func (m *Instance) FillBytes(val byte, offset, length uint64) error {
	if !m.CheckAccessBound(offset, length) {
		return m.outOfBounds(offset, length)
	}
	b := m.data[offset : offset+length]
	for i := range b {
		b[i] = val
	}
	return nil
}

// GetArray copies len(dst) bytes from memory at offset into dst, reversed
// when reverse is set (endian-flipping callers).
func (m *Instance) GetArray(dst []byte, offset uint64, reverse bool) error {
	length := uint64(len(dst))
	if !m.CheckAccessBound(offset, length) {
		return m.outOfBounds(offset, length)
	}
	if reverse {
		for i := uint64(0); i < length; i++ {
			dst[i] = m.data[offset+length-1-i]
		}
	} else {
		copy(dst, m.data[offset:offset+length])
	}
	return nil
}

// SetArray copies src into memory at offset, reversed when reverse is set.
func (m *Instance) SetArray(src []byte, offset uint64, reverse bool) error {
	length := uint64(len(src))
	if !m.CheckAccessBound(offset, length) {
		return m.outOfBounds(offset, length)
	}
	if reverse {
		for i := uint64(0); i < length; i++ {
			m.data[offset+i] = src[length-1-i]
		}
	} else {
		copy(m.data[offset:offset+length], src)
	}
	return nil
}

// StringView returns a zero-copy string over [offset, offset+size). The
// string aliases the buffer, so it must not outlive the next GrowPage or
// Close, and the bytes under it must not be mutated while it is held.
func (m *Instance) StringView(offset uint64, size uint32) (string, error) {
	length := uint64(size)
	if !m.CheckAccessBound(offset, length) {
		return "", m.outOfBounds(offset, length)
	}
	if size == 0 {
		return "", nil
	}
	return unsafe.String(&m.data[offset], size), nil
}

func (m *Instance) outOfBounds(offset, length uint64) error {
	err := errors.MemoryOutOfBounds(offset, length, m.BoundIdx())
	Logger().Debug("memory access out of bounds",
		zap.Uint64("offset", offset),
		zap.Uint64("length", length),
		zap.Uint64("bound", m.BoundIdx()))
	return err
}
