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
	"bytes"
	"fmt"
	"reflect"
)

// Statement is one step of a Sequence: a call to Operation whose arguments
// are the outputs of earlier statements in the same sequence, referenced by
// index.
type Statement struct {
	Operation TypedOperation
	InputRefs []int
}

// Sequence is an ordered, immutable list of statements. Extending a
// Sequence always produces a new Sequence; the receiver is never mutated.
type Sequence struct {
	statements []Statement
	variables  []Type
}

// EmptySequence returns the zero-length Sequence.
func EmptySequence() *Sequence {
	return &Sequence{}
}

// Size returns the number of statements in the sequence.
func (s *Sequence) Size() int {
	return len(s.statements)
}

// Statement returns the statement at index i.
func (s *Sequence) Statement(i int) Statement {
	return s.statements[i]
}

// Variable returns the output Type of the statement at index i, i.e. the
// inferred type of the variable that statement's result is assigned to.
func (s *Sequence) Variable(i int) Type {
	return s.variables[i]
}

// Concat returns a new Sequence consisting of s's statements followed by
// other's, with other's input references shifted by s's length so they
// keep pointing at the same logical predecessors.
func (s *Sequence) Concat(other *Sequence) *Sequence {
	offset := len(s.statements)
	out := &Sequence{
		statements: make([]Statement, 0, len(s.statements)+len(other.statements)),
		variables:  make([]Type, 0, len(s.statements)+len(other.statements)),
	}
	out.statements = append(out.statements, s.statements...)
	out.variables = append(out.variables, s.variables...)
	for _, st := range other.statements {
		shifted := make([]int, len(st.InputRefs))
		for i, ref := range st.InputRefs {
			shifted[i] = ref + offset
		}
		out.statements = append(out.statements, Statement{Operation: st.Operation, InputRefs: shifted})
	}
	out.variables = append(out.variables, other.variables...)
	return out
}

// Extend returns a new Sequence with one additional terminal statement
// calling op against the given input reference indices, each of which must
// be less than the new statement's own index.
func (s *Sequence) Extend(op TypedOperation, inputRefs []int) *Sequence {
	newIndex := len(s.statements)
	for _, ref := range inputRefs {
		if ref >= newIndex {
			panic(fmt.Sprintf("ddic: input ref %d is not less than new statement index %d", ref, newIndex))
		}
	}

	out := &Sequence{
		statements: make([]Statement, len(s.statements), len(s.statements)+1),
		variables:  make([]Type, len(s.variables), len(s.variables)+1),
	}
	copy(out.statements, s.statements)
	copy(out.variables, s.variables)
	out.statements = append(out.statements, Statement{Operation: op, InputRefs: inputRefs})
	out.variables = append(out.variables, op.ReturnType)
	return out
}

// String renders the sequence for debugging, one statement per line.
func (s *Sequence) String() string {
	b := &bytes.Buffer{}
	fmt.Fprintln(b, "sequence {")
	for i, st := range s.statements {
		fmt.Fprintf(b, "\ts%d = %v%v\n", i, st.Operation, st.InputRefs)
	}
	fmt.Fprintln(b, "}")
	return b.String()
}

// ExecutionOutcome is the per-statement result of running a sequence.
type ExecutionOutcome int

const (
	// NotExecuted is the outcome of a statement that has not yet run,
	// including every statement after the one that terminated execution.
	NotExecuted ExecutionOutcome = iota
	// NormalExecution means the statement completed and produced Value.
	NormalExecution
	// ExceptionalExecution means the statement panicked or returned a
	// non-nil trailing error; Err holds that error, or the recovered value
	// wrapped as an error.
	ExceptionalExecution
	// Timeout means the executor's deadline elapsed before the statement
	// returned.
	Timeout
)

func (o ExecutionOutcome) String() string {
	switch o {
	case NotExecuted:
		return "NotExecuted"
	case NormalExecution:
		return "NormalExecution"
	case ExceptionalExecution:
		return "ExceptionalExecution"
	case Timeout:
		return "Timeout"
	default:
		return fmt.Sprintf("ExecutionOutcome(%d)", int(o))
	}
}

// StatementResult is the outcome of executing a single statement.
type StatementResult struct {
	Outcome ExecutionOutcome
	Value   interface{}
	Err     error
}

// ExecutableSequence couples a Sequence with the per-statement outcomes of
// one execution attempt.
type ExecutableSequence struct {
	Sequence *Sequence
	Results  []StatementResult
}

// TerminalResult returns the result of the sequence's last statement. It
// panics if the sequence is empty.
func (es *ExecutableSequence) TerminalResult() StatementResult {
	return es.Results[len(es.Results)-1]
}

// IsTerminalNormalNonNil reports whether the terminal statement completed
// normally and produced a non-nil value, the sole condition under which a
// sequence is salvaged into the pool.
func (es *ExecutableSequence) IsTerminalNormalNonNil() bool {
	r := es.TerminalResult()
	if r.Outcome != NormalExecution {
		return false
	}
	return !isNilValue(r.Value)
}

func isNilValue(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
