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
	"fmt"
	"reflect"

	"github.com/augurtest/ddic/internal/ddicreflect"
)

// OperationKind classifies how a TypedOperation is invoked.
type OperationKind int

const (
	// Constructor builds a fresh value of its ReturnType from its inputs.
	// Modeled in Go as a registered function of the NewXxx(args...) T shape.
	Constructor OperationKind = iota
	// InstanceMethod takes DeclaringType as input slot 0 (the receiver)
	// and the remaining inputs as its arguments.
	InstanceMethod
	// StaticMethod takes no receiver; inputs are exactly its arguments.
	StaticMethod
	// NonreceiverInit produces a non-receiver type (primitive, string) with
	// no declaring type of its own, e.g. a literal-producing factory.
	NonreceiverInit
)

func (k OperationKind) String() string {
	switch k {
	case Constructor:
		return "Constructor"
	case InstanceMethod:
		return "InstanceMethod"
	case StaticMethod:
		return "StaticMethod"
	case NonreceiverInit:
		return "NonreceiverInit"
	default:
		return fmt.Sprintf("OperationKind(%d)", int(k))
	}
}

// TypedOperation is a callable bundled with its static signature: the type
// it is declared on (zero value if none), its input slot types, its return
// type, and its Kind. For InstanceMethod operations, input slot 0 is the
// receiver. Operations are value-equal on their full signature.
type TypedOperation struct {
	DeclaringType Type
	InputTypes    []Type
	ReturnType    Type
	Kind          OperationKind

	// fn is the callable backing this operation: a func value for
	// Constructor/StaticMethod/NonreceiverInit, or a method-expression Value
	// for InstanceMethod whose own Type already includes the receiver as
	// argument 0 (reflect.Method.Func convention).
	fn reflect.Value

	// name, when set, is used for diagnostics via String().
	name ddicreflect.Func
}

// Call invokes the operation against the given input values, which must
// align positionally with InputTypes.
func (op TypedOperation) Call(args []reflect.Value) []reflect.Value {
	return op.fn.Call(args)
}

// Equal reports whether op and other share the same signature: declaring
// type, input types (in order), return type, and kind.
func (op TypedOperation) Equal(other TypedOperation) bool {
	if op.Kind != other.Kind {
		return false
	}
	if op.DeclaringType.rt != other.DeclaringType.rt {
		return false
	}
	if op.ReturnType.rt != other.ReturnType.rt {
		return false
	}
	if len(op.InputTypes) != len(other.InputTypes) {
		return false
	}
	for i := range op.InputTypes {
		if op.InputTypes[i].rt != other.InputTypes[i].rt {
			return false
		}
	}
	return true
}

// String renders the operation for diagnostics, e.g.
// "Constructor example.com/shapes.NewWidget[int] *shapes.Widget".
func (op TypedOperation) String() string {
	ins := make([]string, len(op.InputTypes))
	for i, t := range op.InputTypes {
		ins[i] = t.String()
	}
	name := op.name.String()
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("%v %v%v %v", op.Kind, name, ins, op.ReturnType)
}
