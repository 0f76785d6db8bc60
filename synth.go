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
	"math/rand"
	"reflect"
)

// typeIndexTable records, for each statement type encountered while
// drawing slot sequences, the global offsets within the synthesis buffer
// where statements of that type landed, in discovery order.
type typeIndexTable struct {
	order   []reflect.Type
	indices map[reflect.Type][]int
}

func newTypeIndexTable() *typeIndexTable {
	return &typeIndexTable{indices: make(map[reflect.Type][]int)}
}

func (t *typeIndexTable) record(rt reflect.Type, idx int) {
	if _, ok := t.indices[rt]; !ok {
		t.order = append(t.order, rt)
	}
	t.indices[rt] = append(t.indices[rt], idx)
}

// compatible returns every recorded index whose statement type is
// boxing-equivalent to slotType, in the order those types were first
// recorded.
func (t *typeIndexTable) compatible(slotType Type) []int {
	var out []int
	for _, rt := range t.order {
		if AreEquivalentConsideringBoxing(slotType, TypeOf(rt)) {
			out = append(out, t.indices[rt]...)
		}
	}
	return out
}

// synthesize draws one sequence per input slot of op from pool, concatenates
// them, and appends op as a terminal statement whose InputRefs are resolved
// positionally by boxing equivalence.
func synthesize(pool SequenceCollection, rng *rand.Rand, op TypedOperation) (*Sequence, error) {
	buf := EmptySequence()
	table := newTypeIndexTable()

	for _, slotType := range op.InputTypes {
		candidates := pool.Query(slotType, slotType.IsPrimitive(), false)
		if len(candidates) == 0 {
			return nil, errNoInputsForSlot
		}

		drawn := candidates[rng.Intn(len(candidates))]
		offset := buf.Size()
		buf = buf.Concat(drawn)

		for i := 0; i < drawn.Size(); i++ {
			table.record(drawn.Variable(i).rt, offset+i)
		}
	}

	// Step 3: resolve each input slot to a concrete statement index,
	// consuming compatible indices positionally so that two slots of the
	// same type claim two different producing statements.
	usage := make(map[reflect.Type]int)
	inputRefs := make([]int, len(op.InputTypes))

	for i, slotType := range op.InputTypes {
		compatible := table.compatible(slotType)
		n := usage[slotType.rt]
		if n >= len(compatible) {
			return nil, errNotEnoughDistinctIndices
		}
		inputRefs[i] = compatible[n]
		usage[slotType.rt] = n + 1
	}

	return buf.Extend(op, inputRefs), nil
}
