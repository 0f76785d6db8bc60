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
)

// SequenceCollection is the persistent store of salvaged sequences: a
// mapping from Type to previously synthesized Sequences, queryable by
// (requestedType, exactTypeMatch, onlyReceivers).
type SequenceCollection interface {
	// Query returns sequences whose terminal statement's output type
	// equals t if exactTypeMatch, else is assignable to t; and, if
	// onlyReceivers, is usable as a method receiver (not a non-receiver
	// type). Order is unspecified but stable within one call.
	Query(t Type, exactTypeMatch, onlyReceivers bool) []*Sequence

	// Add inserts s, keyed by its terminal statement's output type.
	// Idempotent on structural equality: adding a sequence already
	// present (by pointer or by matching statement sequence) is a no-op
	// that reports false.
	Add(s *Sequence) bool
}

// MemoryPool is the default in-process SequenceCollection, guarded by a
// sync.Mutex field so concurrent callers can share one pool safely.
type MemoryPool struct {
	mu  sync.Mutex
	byT map[reflect.Type][]*Sequence
}

// NewMemoryPool returns an empty MemoryPool.
func NewMemoryPool() *MemoryPool {
	return &MemoryPool{byT: make(map[reflect.Type][]*Sequence)}
}

// Query implements SequenceCollection.
func (p *MemoryPool) Query(t Type, exactTypeMatch, onlyReceivers bool) []*Sequence {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []*Sequence
	if exactTypeMatch {
		for _, s := range p.byT[t.rt] {
			if onlyReceivers && s.Variable(s.Size()-1).IsNonreceiverType() {
				continue
			}
			out = append(out, s)
		}
		return out
	}

	for rt, seqs := range p.byT {
		if !t.IsAssignableFrom(TypeOf(rt)) {
			continue
		}
		for _, s := range seqs {
			if onlyReceivers && s.Variable(s.Size()-1).IsNonreceiverType() {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

// Add implements SequenceCollection.
func (p *MemoryPool) Add(s *Sequence) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.Size() == 0 {
		return false
	}
	rt := s.Variable(s.Size() - 1).rt
	for _, existing := range p.byT[rt] {
		if sequencesEqual(existing, s) {
			return false
		}
	}
	p.byT[rt] = append(p.byT[rt], s)
	return true
}

// Size returns the total number of sequences banked across all types.
// It is a diagnostic convenience, not part of SequenceCollection.
func (p *MemoryPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, seqs := range p.byT {
		n += len(seqs)
	}
	return n
}

func sequencesEqual(a, b *Sequence) bool {
	if a == b {
		return true
	}
	if a.Size() != b.Size() {
		return false
	}
	for i := range a.statements {
		sa, sb := a.statements[i], b.statements[i]
		if !sa.Operation.Equal(sb.Operation) {
			return false
		}
		if len(sa.InputRefs) != len(sb.InputRefs) {
			return false
		}
		for j := range sa.InputRefs {
			if sa.InputRefs[j] != sb.InputRefs[j] {
				return false
			}
		}
	}
	return true
}
