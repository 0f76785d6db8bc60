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

	"go.uber.org/atomic"
)

// Trackers holds three process-wide, additive-only sets: specified
// classes (user-named classes, populated by the host ahead of time),
// unspecified classes (classes discovery touched but that were not
// user-specified), and uninstantiable types (types construction gave up
// producing). All three only grow: entries are never removed, since a
// type marked uninstantiable may gain a producer by a later Universe
// registration and deserves re-evaluation on the next Construct call.
type Trackers struct {
	mu sync.Mutex

	specified       map[reflect.Type]struct{}
	unspecified     map[reflect.Type]struct{}
	uninstantiable  map[reflect.Type]struct{}
	invocationCount atomic.Int64
}

// NewTrackers returns an empty Trackers.
func NewTrackers() *Trackers {
	return &Trackers{
		specified:      make(map[reflect.Type]struct{}),
		unspecified:    make(map[reflect.Type]struct{}),
		uninstantiable: make(map[reflect.Type]struct{}),
	}
}

// MarkSpecified records t as a user-specified class.
func (tr *Trackers) MarkSpecified(t reflect.Type) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.specified[t] = struct{}{}
}

// MarkUnspecified records t as touched-but-not-user-specified, unless it
// is already known as specified.
func (tr *Trackers) MarkUnspecified(t reflect.Type) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if _, ok := tr.specified[t]; ok {
		return
	}
	tr.unspecified[t] = struct{}{}
}

// MarkUninstantiable records t as a type construction found no producers
// for on this invocation. The mark is additive, not authoritative: callers
// must not treat membership as a permanent negative cache, since a later
// registration may make t instantiable.
func (tr *Trackers) MarkUninstantiable(t reflect.Type) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.uninstantiable[t] = struct{}{}
}

// IsUninstantiable reports whether t was ever marked uninstantiable.
func (tr *Trackers) IsUninstantiable(t reflect.Type) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	_, ok := tr.uninstantiable[t]
	return ok
}

// IsSpecified reports whether t is a user-specified class.
func (tr *Trackers) IsSpecified(t reflect.Type) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	_, ok := tr.specified[t]
	return ok
}

// recordInvocation bumps the process-wide Construct call counter.
func (tr *Trackers) recordInvocation() {
	tr.invocationCount.Inc()
}

// Invocations reports how many times Construct has run against these
// Trackers.
func (tr *Trackers) Invocations() int64 {
	return tr.invocationCount.Load()
}
