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

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"github.com/augurtest/ddic/internal/ddicreflect"
)

var (
	errNotFunc      = errors.New("registration must be done through a function value")
	errNoReturn     = errors.New("registered function must return at least one value")
	errNameNotFound = errors.New("no type registered under that name")
	errTypeNotFound = errors.New("type is not registered in the universe")
)

// Universe is the reflective horizon searched for producers. The host
// populates it once, up front, with the constructor-shaped functions and
// types the generator is allowed to call.
//
// A Universe is safe for concurrent use; a sync.Mutex field guards its
// indices.
type Universe struct {
	mu sync.Mutex

	// operations indexed by return type, insertion order preserved per
	// return type the same way Container.nodes accumulates producers.
	byReturnType map[reflect.Type][]TypedOperation

	// types registered for instance-method enumeration, keyed by type for
	// O(1) membership tests.
	types map[reflect.Type]struct{}

	// named exposes RegisterNamed/ResolveByName lookups for hosts that
	// want to address a type by a stable string rather than a reflect.Type.
	named map[string]reflect.Type
}

// NewUniverse returns an empty Universe.
func NewUniverse() *Universe {
	return &Universe{
		byReturnType: make(map[reflect.Type][]TypedOperation),
		types:        make(map[reflect.Type]struct{}),
		named:        make(map[string]reflect.Type),
	}
}

// Register adds fn, a Go function value, as an operation producing each of
// its non-error return values. fn's inputs become the operation's input
// slots; if fn has more than one result and its last result is an error,
// that result is dropped from the
// operation's outputs but its presence does not otherwise affect
// registration (the executor bridge treats a non-nil trailing error as an
// ExceptionalExecution, see exec.go).
//
// fn is classified as NonreceiverInit if its return type is a non-receiver
// type (primitive, string), else Constructor. Go free functions have no
// separate "static method" reflective form distinct from a constructor;
// use RegisterStatic to register fn under the StaticMethod kind instead
// when that distinction matters to the host, and RegisterType to expose a
// type's own methods to discovery.
func (u *Universe) Register(fn interface{}) error {
	return u.register(fn, Constructor)
}

// RegisterStatic behaves like Register but classifies fn's non-nonreceiver
// outputs as StaticMethod rather than Constructor, for hosts that want to
// preserve that distinction in the operation's own classification.
func (u *Universe) RegisterStatic(fn interface{}) error {
	return u.register(fn, StaticMethod)
}

func (u *Universe) register(fn interface{}, defaultKind OperationKind) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	ftype := reflect.TypeOf(fn)
	if ftype == nil || ftype.Kind() != reflect.Func {
		return errNotFunc
	}

	outc := ftype.NumOut()
	if outc == 0 {
		return errNoReturn
	}
	if outc > 1 && ftype.Out(outc-1) == _errType {
		outc--
	}

	ins := make([]Type, ftype.NumIn())
	for i := range ins {
		ins[i] = TypeOf(ftype.In(i))
	}

	name := ddicreflect.InspectFunc(fn)
	fv := reflect.ValueOf(fn)

	for i := 0; i < outc; i++ {
		ret := TypeOf(ftype.Out(i))
		kind := defaultKind
		if ret.IsNonreceiverType() {
			kind = NonreceiverInit
		}

		op := TypedOperation{
			InputTypes: ins,
			ReturnType: ret,
			Kind:       kind,
			fn:         fv,
			name:       name,
		}
		u.byReturnType[ret.rt] = append(u.byReturnType[ret.rt], op)
	}

	return nil
}

// MustRegister calls Register and panics on error.
func (u *Universe) MustRegister(fn interface{}) {
	if err := u.Register(fn); err != nil {
		panic(err)
	}
}

// RegisterType adds t to the discovery horizon so its exported methods
// become InstanceMethod producers during discovery's breadth-first search. It
// does not by itself provide a way to construct a value of t; pair it with
// Register of a constructor function, or rely on t's own factory methods
// being reachable from some other producer's return type.
func (u *Universe) RegisterType(t reflect.Type) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.types[t] = struct{}{}
}

// RegisterNamed records t under a host-chosen name so it participates both
// as a RegisterType horizon member and as a name resolvable via
// ResolveByName. This is the config-facing registration path for hosts
// that address types by string (e.g. from a config file) rather than by
// reflect.Type literal.
func (u *Universe) RegisterNamed(name string, t reflect.Type) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.named[name] = t
	u.types[t] = struct{}{}
}

// ResolveByName looks up a previously RegisterNamed type. It returns a
// wrapped ConfigurationError if name was never registered.
func (u *Universe) ResolveByName(name string) (Type, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	t, ok := u.named[name]
	if !ok {
		return Type{}, &ConfigurationError{Name: name, Err: errNameNotFound}
	}
	return TypeOf(t), nil
}

// specifiedTypes returns every type registered via RegisterType or
// RegisterNamed, in unspecified order, for use as discovery's initial
// search frontier.
func (u *Universe) specifiedTypes() []reflect.Type {
	u.mu.Lock()
	defer u.mu.Unlock()
	ts := make([]reflect.Type, 0, len(u.types))
	for t := range u.types {
		ts = append(ts, t)
	}
	return ts
}

// operationsReturning returns every registered operation whose declared
// return type is exactly rt (not assignability - the caller filters that).
func (u *Universe) operationsReturning(rt reflect.Type) []TypedOperation {
	u.mu.Lock()
	defer u.mu.Unlock()
	ops := u.byReturnType[rt]
	out := make([]TypedOperation, len(ops))
	copy(out, ops)
	return out
}

// allReturnTypes returns every distinct return type with at least one
// registered operation, used by discovery to scan for assignable
// producers without iterating the whole map under lock repeatedly.
func (u *Universe) allReturnTypes() []reflect.Type {
	u.mu.Lock()
	defer u.mu.Unlock()
	rts := make([]reflect.Type, 0, len(u.byReturnType))
	for rt := range u.byReturnType {
		rts = append(rts, rt)
	}
	return rts
}

func (u *Universe) isRegisteredType(t reflect.Type) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.types[t]
	return ok
}

// EnsureType reports errTypeNotFound if t was never passed to RegisterType
// or RegisterNamed. Hosts can use it to fail fast when wiring a Universe up
// front, before any Construct call would otherwise surface the gap only as
// an empty result.
func (u *Universe) EnsureType(t reflect.Type) error {
	if !u.isRegisteredType(t) {
		return errTypeNotFound
	}
	return nil
}
