package memory

import "math"

// Int covers the exact wasm integer shapes, signed and unsigned. The type
// parameter picks the extension rule: loads into signed types sign-extend,
// loads into unsigned types zero-extend.
type Int interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Load reads length bytes little-endian at offset and extends them to T.
// length must be between 1 and the size of T; narrower lengths are the
// partial loads (i32.load8_s and friends). When T is signed and the top
// loaded bit is set, the value sign-extends; otherwise it zero-extends.
func Load[T Int](m *Instance, offset uint64, length uint32) (T, error) {
	if !m.CheckAccessBound(offset, uint64(length)) {
		return 0, m.outOfBounds(offset, uint64(length))
	}

	var raw uint64
	for i := uint32(0); i < length; i++ {
		raw |= uint64(m.data[offset+uint64(i)]) << (i * 8)
	}

	var zero T
	signed := zero-1 < 0
	if signed && length < 8 && raw>>(length*8-1)&1 == 1 {
		for i := length; i < 8; i++ {
			raw |= 0xFF << (i * 8)
		}
	}
	return T(raw), nil
}

// Store writes the low length bytes of v little-endian at offset. length
// must be between 1 and the size of T; narrower lengths are the wrapping
// stores (i32.store8 and friends).
func Store[T Int](m *Instance, v T, offset uint64, length uint32) error {
	if !m.CheckAccessBound(offset, uint64(length)) {
		return m.outOfBounds(offset, uint64(length))
	}

	// Signed values sign-extend here; only the low length bytes land, and
	// two's complement keeps those identical either way.
	raw := uint64(v)
	for i := uint32(0); i < length; i++ {
		m.data[offset+uint64(i)] = byte(raw >> (i * 8))
	}
	return nil
}

// LoadFloat32 reads the 4-byte bit pattern at offset. Floats have no
// partial loads; NaN payloads come through untouched.
func LoadFloat32(m *Instance, offset uint64) (float32, error) {
	bits, err := Load[uint32](m, offset, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// LoadFloat64 reads the 8-byte bit pattern at offset.
func LoadFloat64(m *Instance, offset uint64) (float64, error) {
	bits, err := Load[uint64](m, offset, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// StoreFloat32 writes the 4-byte bit pattern of v at offset.
func StoreFloat32(m *Instance, v float32, offset uint64) error {
	return Store(m, math.Float32bits(v), offset, 4)
}

// StoreFloat64 writes the 8-byte bit pattern of v at offset.
func StoreFloat64(m *Instance, v float64, offset uint64) error {
	return Store(m, math.Float64bits(v), offset, 8)
}

// LoadV128 reads 16 bytes at offset as two little-endian words.
func LoadV128(m *Instance, offset uint64) (lo, hi uint64, err error) {
	if !m.CheckAccessBound(offset, 16) {
		return 0, 0, m.outOfBounds(offset, 16)
	}
	for i := uint64(0); i < 8; i++ {
		lo |= uint64(m.data[offset+i]) << (i * 8)
		hi |= uint64(m.data[offset+8+i]) << (i * 8)
	}
	return lo, hi, nil
}

// StoreV128 writes the two words of a v128 little-endian at offset.
func StoreV128(m *Instance, lo, hi uint64, offset uint64) error {
	if !m.CheckAccessBound(offset, 16) {
		return m.outOfBounds(offset, 16)
	}
	for i := uint64(0); i < 8; i++ {
		m.data[offset+i] = byte(lo >> (i * 8))
		m.data[offset+8+i] = byte(hi >> (i * 8))
	}
	return nil
}
