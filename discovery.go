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

	"github.com/augurtest/ddic/internal/ddicreflect"
)

// orderedTypeQueue is the search frontier, tracking both the processed set
// (to break cycles, keyed on reflect.Type identity) and the pending queue.
type orderedTypeQueue struct {
	pending   []reflect.Type
	processed map[reflect.Type]struct{}
}

func newOrderedTypeQueue() *orderedTypeQueue {
	return &orderedTypeQueue{processed: make(map[reflect.Type]struct{})}
}

func (q *orderedTypeQueue) enqueue(t reflect.Type) {
	if t == nil {
		return
	}
	if _, ok := q.processed[t]; ok {
		return
	}
	for _, p := range q.pending {
		if p == t {
			return
		}
	}
	q.pending = append(q.pending, t)
}

func (q *orderedTypeQueue) dequeue() (reflect.Type, bool) {
	if len(q.pending) == 0 {
		return nil, false
	}
	t := q.pending[0]
	q.pending = q.pending[1:]
	q.processed[t] = struct{}{}
	return t, true
}

// producers runs a breadth-first search over Types, starting from the
// frontier {target} ∪ specifiedTypes(), and returns an insertion-ordered
// set of producer operations for target.
//
// "Enumerate public constructors of C" has no Go reflective analogue
// (constructors aren't a runtime concept), so step 1 instead scans every
// operation the Universe has had registered whose return type is assignable
// to target; step 2, enumerating public methods of C, is implemented with
// genuine reflection via reflect.Type.Method for every type the host
// called RegisterType on.
func producers(u *Universe, tr *Trackers, target Type) []TypedOperation {
	q := newOrderedTypeQueue()
	q.enqueue(target.rt)
	for _, st := range u.specifiedTypes() {
		q.enqueue(st)
	}

	var result []TypedOperation
	seen := make(map[string]struct{})

	addOp := func(op TypedOperation) {
		key := op.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		result = append(result, op)
	}

	for {
		c, ok := q.dequeue()
		if !ok {
			break
		}
		ct := TypeOf(c)
		if ct.IsNonreceiverType() {
			continue
		}

		if c != target.rt {
			tr.MarkUnspecified(c)
		}

		// Step 1: operations (Go's constructor substitute) returning a
		// type assignable to target, with a non-abstract declaring type.
		// Go has no abstract classes; the nearest analogue, an interface
		// declaring type, is excluded from Constructor-kind emission
		// since interfaces cannot be instantiated as Constructor.Out
		// pointer structural-literal values - only StaticMethod/
		// NonreceiverInit producers of an interface return type qualify.
		for _, rt := range u.allReturnTypes() {
			assignable := target.IsAssignableFrom(TypeOf(rt))
			for _, op := range u.operationsReturning(rt) {
				enqueueOperationInputs(q, op)
				if !assignable {
					continue
				}
				if op.Kind == Constructor && rt.Kind() == reflect.Interface {
					continue
				}
				addOp(op)
			}
		}

		// Step 2: exported instance methods of registered types whose
		// return type is assignable to target.
		if u.isRegisteredType(c) {
			emitMethodProducers(q, c, target, addOp)
		}
	}

	return result
}

// enqueueOperationInputs enqueues every non-primitive parameter type of an
// enumerated operation, regardless of whether the operation was ultimately
// emitted as a producer. Parameters of a rejected operation are still
// enqueued, so the search can reach types only reachable through a
// candidate that did not itself qualify.
func enqueueOperationInputs(q *orderedTypeQueue, op TypedOperation) {
	for _, in := range op.InputTypes {
		if in.IsPrimitive() {
			continue
		}
		q.enqueue(in.rt)
	}
}

// emitMethodProducers enumerates c's exported methods via reflect, emits
// each whose return type is assignable to target as an InstanceMethod
// producer (receiver as input slot 0), and enqueues every parameter type
// of every enumerated method, rejected or not.
func emitMethodProducers(q *orderedTypeQueue, c reflect.Type, target Type, addOp func(TypedOperation)) {
	name := ddicreflect.Func{Package: c.PkgPath(), Name: c.Name()}

	for i := 0; i < c.NumMethod(); i++ {
		m := c.Method(i)
		if m.PkgPath != "" {
			continue // unexported
		}

		mtype := m.Type // includes receiver as In(0) via reflect.Type.Method
		ins := make([]Type, mtype.NumIn())
		for j := 0; j < mtype.NumIn(); j++ {
			ins[j] = TypeOf(mtype.In(j))
		}

		// Step 3 enqueues parameters of every enumerated method,
		// whether or not its return type is assignable to target.
		for _, in := range ins[1:] {
			if !in.IsPrimitive() {
				q.enqueue(in.rt)
			}
		}

		outc := mtype.NumOut()
		if outc == 0 {
			continue
		}
		trailingErr := outc > 1 && mtype.Out(outc-1) == _errType
		if trailingErr {
			outc--
		}

		for k := 0; k < outc; k++ {
			ret := TypeOf(mtype.Out(k))

			if !target.IsAssignableFrom(ret) {
				continue
			}

			addOp(TypedOperation{
				DeclaringType: TypeOf(c),
				InputTypes:    ins,
				ReturnType:    ret,
				Kind:          InstanceMethod,
				fn:            m.Func,
				name:          ddicreflect.Func{Package: name.Package, Name: name.Name + "." + m.Name},
			})
		}
	}
}
