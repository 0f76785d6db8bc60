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
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectExecutorNormalSequence(t *testing.T) {
	t.Parallel()

	seq := EmptySequence().
		Extend(intOp(3), nil).
		Extend(TypedOperation{
			ReturnType: TypeOf(reflect.TypeOf(0)),
			Kind:       StaticMethod,
			fn:         reflect.ValueOf(func(x int) int { return x + 1 }),
			InputTypes: []Type{TypeOf(reflect.TypeOf(0))},
		}, []int{0})

	es := NewReflectExecutor().Execute(context.Background(), seq)
	require.True(t, es.IsTerminalNormalNonNil())
	assert.Equal(t, 4, es.TerminalResult().Value)
}

func TestReflectExecutorRecoversPanic(t *testing.T) {
	t.Parallel()

	op := TypedOperation{
		ReturnType: TypeOf(reflect.TypeOf(0)),
		Kind:       NonreceiverInit,
		fn:         reflect.ValueOf(func() int { panic("boom") }),
	}
	seq := EmptySequence().Extend(op, nil)

	es := NewReflectExecutor().Execute(context.Background(), seq)
	res := es.TerminalResult()
	assert.Equal(t, ExceptionalExecution, res.Outcome)
	assert.Error(t, res.Err)
}

func TestReflectExecutorTrailingErrorIsExceptional(t *testing.T) {
	t.Parallel()

	op := TypedOperation{
		ReturnType: TypeOf(reflect.TypeOf(0)),
		Kind:       NonreceiverInit,
		fn:         reflect.ValueOf(func() (int, error) { return 0, errors.New("nope") }),
	}
	seq := EmptySequence().Extend(op, nil)

	es := NewReflectExecutor().Execute(context.Background(), seq)
	assert.Equal(t, ExceptionalExecution, es.TerminalResult().Outcome)
}

func TestReflectExecutorTimeout(t *testing.T) {
	t.Parallel()

	op := TypedOperation{
		ReturnType: TypeOf(reflect.TypeOf(0)),
		Kind:       NonreceiverInit,
		fn: reflect.ValueOf(func() int {
			time.Sleep(200 * time.Millisecond)
			return 0
		}),
	}
	seq := EmptySequence().Extend(op, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	es := NewReflectExecutor().Execute(ctx, seq)
	assert.Equal(t, Timeout, es.TerminalResult().Outcome)
}

func TestReflectExecutorStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	failing := TypedOperation{
		ReturnType: TypeOf(reflect.TypeOf(0)),
		Kind:       NonreceiverInit,
		fn:         reflect.ValueOf(func() int { panic("stop here") }),
	}
	seq := EmptySequence().Extend(failing, nil).Extend(intOp(9), nil)

	es := NewReflectExecutor().Execute(context.Background(), seq)
	require.Len(t, es.Results, 2)
	assert.Equal(t, ExceptionalExecution, es.Results[0].Outcome)
	assert.Equal(t, NotExecuted, es.Results[1].Outcome)
}
