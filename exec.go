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
	"context"
	"fmt"
	"reflect"
)

// Executor is the execution bridge: it runs a Sequence statement by
// statement and guarantees no panic escapes.
type Executor interface {
	Execute(ctx context.Context, seq *Sequence) *ExecutableSequence
}

// ReflectExecutor is the default Executor. It runs each statement via
// reflect.Value.Call, stops at the first exceptional or timed-out
// statement (leaving the rest NotExecuted), and recovers panics into
// ExceptionalExecution results: a candidate raising a panic is an expected
// outcome to be absorbed, not propagated.
type ReflectExecutor struct{}

// NewReflectExecutor returns a ReflectExecutor.
func NewReflectExecutor() *ReflectExecutor {
	return &ReflectExecutor{}
}

// Execute implements Executor.
func (e *ReflectExecutor) Execute(ctx context.Context, seq *Sequence) *ExecutableSequence {
	results := make([]StatementResult, seq.Size())
	values := make([]reflect.Value, seq.Size())

	for i := 0; i < seq.Size(); i++ {
		st := seq.Statement(i)
		args := make([]reflect.Value, len(st.InputRefs))
		for j, ref := range st.InputRefs {
			args[j] = values[ref]
		}

		res := callWithRecover(ctx, st.Operation, args)
		results[i] = res
		if res.Outcome != NormalExecution {
			// Remaining statements stay NotExecuted (their zero value).
			return &ExecutableSequence{Sequence: seq, Results: results}
		}
		values[i] = reflect.ValueOf(res.Value)
		if !values[i].IsValid() {
			values[i] = reflect.Zero(st.Operation.ReturnType.rt)
		}
	}

	return &ExecutableSequence{Sequence: seq, Results: results}
}

// callWithRecover runs op.Call on a goroutine, races it against ctx's
// deadline, and converts a panic into an ExceptionalExecution result. A
// trailing error return value (the same convention Universe.Register
// trims from its output count) is also treated as ExceptionalExecution,
// since from the caller's perspective a constructor reporting failure is
// indistinguishable from one that panicked.
func callWithRecover(ctx context.Context, op TypedOperation, args []reflect.Value) StatementResult {
	type outcome struct {
		res StatementResult
	}
	done := make(chan outcome, 1)

	go func() {
		res := func() (r StatementResult) {
			defer func() {
				if p := recover(); p != nil {
					r = StatementResult{Outcome: ExceptionalExecution, Err: fmt.Errorf("panic: %v", p)}
				}
			}()
			out := op.Call(args)
			return extractTerminalValue(op, out)
		}()
		done <- outcome{res: res}
	}()

	select {
	case o := <-done:
		return o.res
	case <-ctx.Done():
		return StatementResult{Outcome: Timeout, Err: ctx.Err()}
	}
}

// extractTerminalValue inspects a statement's raw call results against its
// operation's declared return arity, splitting out a trailing error.
func extractTerminalValue(op TypedOperation, out []reflect.Value) StatementResult {
	if len(out) == 0 {
		return StatementResult{Outcome: NormalExecution, Value: nil}
	}

	last := out[len(out)-1]
	if last.Type() == _errType && len(out) > 1 {
		if !last.IsNil() {
			return StatementResult{Outcome: ExceptionalExecution, Err: last.Interface().(error)}
		}
		out = out[:len(out)-1]
	} else if last.Type() == _errType && len(out) == 1 {
		if !last.IsNil() {
			return StatementResult{Outcome: ExceptionalExecution, Err: last.Interface().(error)}
		}
		return StatementResult{Outcome: NormalExecution, Value: nil}
	}

	// The operation's ReturnType identifies which of the (possibly
	// multiple) results is the one this statement's Variable represents:
	// Universe.Register and method discovery build one operation per
	// non-error result, so the first result of that type is used, falling
	// back to result 0.
	v := out[0]
	for _, r := range out {
		if r.Type() == op.ReturnType.rt {
			v = r
			break
		}
	}
	if !v.IsValid() {
		return StatementResult{Outcome: NormalExecution, Value: nil}
	}
	return StatementResult{Outcome: NormalExecution, Value: v.Interface()}
}
