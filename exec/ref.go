package exec

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-core/errors"
	"github.com/wippyai/wasm-core/types"
	"github.com/wippyai/wasm-core/values"
)

// RunRefNull pushes a null reference of the given type.
func RunRefNull(st *Stack, vt types.ValType) {
	st.Push(values.NewRef(values.NullRef(vt)))
}

// RunRefIsNull replaces the reference on top with 1 if it is null, else 0.
func RunRefIsNull(st *Stack) {
	if st.Top().Ref().IsNull() {
		st.SetTop(values.NewU32(1))
	} else {
		st.SetTop(values.NewU32(0))
	}
}

// RunRefAsNonNull narrows the reference on top to its non-nullable type.
// Traps on null.
func RunRefAsNonNull(st *Stack) error {
	r := st.Top().Ref()
	if r.IsNull() {
		return errors.NullAccess("ref.as_non_null")
	}
	st.SetTop(values.NewRef(r.WithType(r.Type.ToNonNullable())))
	return nil
}

// RunRefEq pops two references and leaves 1 in place of the first if both
// point at the same object or both are null, else 0. Identity is handle
// identity, so i31 references with equal payloads compare equal.
func RunRefEq(st *Stack) {
	b := st.Pop().Ref()
	a := st.Top().Ref()
	if a.Handle == b.Handle {
		st.SetTop(values.NewU32(1))
	} else {
		st.SetTop(values.NewU32(0))
	}
}

// RunRefFunc pushes a non-null function reference of the function's
// declared type. token is the engine's dispatch key for the function;
// this core never looks inside it.
func RunRefFunc(st *Stack, typeIdx, token uint32) {
	st.Push(values.NewRef(values.Ref{
		Type:   types.NewIndexRefType(typeIdx, false),
		Handle: values.Handle{Kind: values.KindFunc, Index: token},
	}))
}

// RunRefTest replaces the reference on top with the matcher's verdict
// against the expected type: 1 for a match, 0 otherwise. The verdict
// comes from the value's recorded type, so a null tests true exactly
// under the nullable supertypes of the type it was produced at.
func RunRefTest(st *Stack, table *types.Table, expected types.ValType) {
	if types.MatchVal(table, expected, table, st.Top().Ref().Type) {
		st.SetTop(values.NewU32(1))
	} else {
		st.SetTop(values.NewU32(0))
	}
}

// RunRefCast checks the reference on top against the expected type and
// leaves it in place on success. A failed check traps: a null value traps
// as a null-to-non-null cast (null passes every nullable cast within its
// family), anything else as a plain cast failure.
func RunRefCast(st *Stack, table *types.Table, expected types.ValType) error {
	r := st.Top().Ref()
	if !types.MatchVal(table, expected, table, r.Type) {
		Logger().Debug("ref.cast failed",
			zap.Stringer("want", expected),
			zap.Stringer("got", r.Type))
		if r.IsNull() {
			return errors.NullAccess("ref.cast")
		}
		return errors.CastFailed(expected.String(), r.Type.String())
	}
	return nil
}

// RunRefI31 wraps the i32 on top into a non-null i31 reference, keeping
// the low 31 bits.
func RunRefI31(st *Stack) {
	st.SetTop(values.NewRef(values.Ref{
		Type:   types.NewRefType(types.I31Ref, false),
		Handle: values.Handle{Kind: values.KindI31, Index: st.Top().U32() & 0x7FFFFFFF},
	}))
}

// RunI31Get replaces the i31 reference on top with its payload, sign or
// zero extended from 31 bits. Traps on null.
func RunI31Get(st *Stack, signed bool) error {
	op := "i31.get_u"
	if signed {
		op = "i31.get_s"
	}
	r := st.Top().Ref()
	if r.IsNull() {
		return errors.NullAccess(op)
	}
	payload := r.Handle.Index & 0x7FFFFFFF
	if signed {
		st.SetTop(values.NewI32(int32(payload<<1) >> 1))
	} else {
		st.SetTop(values.NewU32(payload))
	}
	return nil
}

// RunAnyConvertExtern re-tags the external reference on top into the any
// hierarchy: null becomes a null anyref, anything else keeps its handle
// under a non-null any type.
func RunAnyConvertExtern(st *Stack) {
	r := st.Top().Ref()
	if r.IsNull() {
		st.SetTop(values.NewRef(values.NullRef(types.NewRefType(types.AnyRef, true))))
		return
	}
	st.SetTop(values.NewRef(r.WithType(types.NewRefType(types.AnyRef, false))))
}

// RunExternConvertAny re-tags the internal reference on top into the
// extern hierarchy. The handle survives both directions, so a round trip
// preserves ref.eq identity.
func RunExternConvertAny(st *Stack) {
	r := st.Top().Ref()
	if r.IsNull() {
		st.SetTop(values.NewRef(values.NullRef(types.NewRefType(types.ExternRef, true))))
		return
	}
	st.SetTop(values.NewRef(r.WithType(types.NewRefType(types.ExternRef, false))))
}
