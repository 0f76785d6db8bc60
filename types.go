// Copyright (c) 2017 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package ddic

import "reflect"

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// Type is a nominal type descriptor. Equality is structural: two Types
// wrapping the same reflect.Type are equal, since reflect.Type values are
// themselves comparable and canonicalized by the runtime.
type Type struct {
	rt reflect.Type
}

// TypeOf wraps a reflect.Type as a Type.
func TypeOf(rt reflect.Type) Type {
	return Type{rt: rt}
}

// Reflect returns the underlying reflect.Type.
func (t Type) Reflect() reflect.Type {
	return t.rt
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if t.rt == nil {
		return "<nil>"
	}
	return t.rt.String()
}

// IsValid reports whether t wraps a non-nil reflect.Type.
func (t Type) IsValid() bool {
	return t.rt != nil
}

// IsAssignableFrom reports whether a value of type other may be assigned to
// a variable of type t, following Go's own assignability rules: identity,
// interface satisfaction, and covariant array/slice element types for
// reference element types.
func (t Type) IsAssignableFrom(other Type) bool {
	if t.rt == nil || other.rt == nil {
		return false
	}
	if t.rt == other.rt {
		return true
	}
	if other.rt.AssignableTo(t.rt) {
		return true
	}
	if t.IsArray() && other.IsArray() {
		te, oe := t.ElementType(), other.ElementType()
		if te.rt.Kind() != reflect.Bool && isReferenceKind(te.rt.Kind()) {
			return te.IsAssignableFrom(oe)
		}
	}
	return false
}

func isReferenceKind(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether t is one of Go's unnamed primitive kinds: the
// boolean, numeric, and string kinds.
func (t Type) IsPrimitive() bool {
	if t.rt == nil {
		return false
	}
	return t.rt.PkgPath() == "" && isPrimitiveKind(t.rt.Kind())
}

func isPrimitiveKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

// IsNonreceiverType reports whether values of t can never meaningfully serve
// as a method receiver: bare primitives and strings, empty interfaces, and
// unnamed composite types. A pointer to a struct is deliberately excluded
// from this even when the struct itself currently has no methods — `*Point`
// is the idiomatic shape a Go constructor returns, and whether Point happens
// to have methods yet says nothing about whether it is a "class" in the
// sense this distinction cares about.
func (t Type) IsNonreceiverType() bool {
	if t.rt == nil {
		return true
	}
	if t.IsPrimitive() {
		return true
	}
	switch t.rt.Kind() {
	case reflect.Interface:
		return t.rt.NumMethod() == 0
	case reflect.Ptr:
		return t.rt.Elem().Kind() != reflect.Struct
	case reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Array:
		return t.rt.Name() == ""
	default:
		return false
	}
}

// IsArray reports whether t is an array or slice type.
func (t Type) IsArray() bool {
	return t.rt != nil && (t.rt.Kind() == reflect.Array || t.rt.Kind() == reflect.Slice)
}

// ElementType returns the element type of an array or slice Type. It panics
// if t is not an array or slice, mirroring reflect.Type.Elem.
func (t Type) ElementType() Type {
	return Type{rt: t.rt.Elem()}
}

// IsError reports whether t is (or implements) the error interface.
func (t Type) IsError() bool {
	return t.rt != nil && t.rt.Implements(_errType)
}

// boxablePrimitiveKinds enumerates the kinds treated as having a "boxed"
// counterpart. Go has no boxed wrapper types, so the reading used here is:
// the primitive kind itself, and any defined (named) type whose underlying
// kind is that primitive — e.g. a bare int and a `type Count int` are
// boxing-equivalent the same way a primitive and its wrapper class are in
// languages with boxed primitives.
var boxablePrimitiveKinds = map[reflect.Kind]bool{
	reflect.Bool:    true,
	reflect.Int:     true,
	reflect.Int8:    true,
	reflect.Int16:   true,
	reflect.Int32:   true,
	reflect.Int64:   true,
	reflect.Uint:    true,
	reflect.Uint8:   true,
	reflect.Uint16:  true,
	reflect.Uint32:  true,
	reflect.Uint64:  true,
	reflect.Float32: true,
	reflect.Float64: true,
	reflect.String:  true,
}

// AreEquivalentConsideringBoxing reports true iff a and b are structurally
// equal, or one is the bare primitive kind and the other
// is a defined type sharing that same underlying kind. Not transitive with
// subtyping: two distinct named types over the same primitive kind are not
// boxing-equivalent to each other, only each to the bare primitive.
func AreEquivalentConsideringBoxing(a, b Type) bool {
	if a.rt == nil || b.rt == nil {
		return a.rt == b.rt
	}
	if a.rt == b.rt {
		return true
	}

	k := a.rt.Kind()
	if k != b.rt.Kind() || !boxablePrimitiveKinds[k] {
		return false
	}

	aBare := a.rt.PkgPath() == ""
	bBare := b.rt.PkgPath() == ""
	// Exactly one side must be the bare primitive; two distinct named types
	// of the same kind are not equivalent to each other.
	return aBare != bBare
}
