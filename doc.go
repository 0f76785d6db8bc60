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

// Package ddic implements a demand-driven input constructor for a random
// call-sequence generator.
//
// The surrounding generator works bottom-up: it picks an operation and
// draws arguments from a pool of previously synthesized values. When the
// pool lacks a value of some required type, ddic is invoked to construct
// one top-down: it searches a registered universe of operations for
// producers of the target type, recursively discovers producers for their
// own inputs, synthesizes candidate call sequences, executes them, and
// deposits any successful results back into the pool.
//
// A single Construct call is not required to succeed. Partial progress —
// intermediate values banked into the pool along the way — is the primary
// mechanism by which later calls eventually succeed.
//
//	u := ddic.NewUniverse()
//	u.MustRegister(NewWidget)
//	u.RegisterType(reflect.TypeOf(Widget{}))
//
//	pool := ddic.NewMemoryPool()
//	c := ddic.NewConstructor(u, pool)
//
//	seqs, err := c.Construct(ctx, ddic.TypeOf(reflect.TypeOf(Widget{})))
package ddic
