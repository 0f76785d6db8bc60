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
	"log"
	"math/rand"
	"time"
)

// Logger receives DDIC's diagnostic warnings. The default forwards to the
// standard library log package.
type Logger interface {
	Warnf(format string, args ...interface{})
}

type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...interface{}) {
	log.Printf("ddic: "+format, args...)
}

// Option configures a Constructor.
type Option interface {
	apply(*Constructor)
}

type optionFunc func(*Constructor)

func (f optionFunc) apply(c *Constructor) { f(c) }

// WithRand overrides the source of randomness used to draw candidate
// sequences in synthesis. Pass a seeded *rand.Rand for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return optionFunc(func(c *Constructor) { c.rand = r })
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l Logger) Option {
	return optionFunc(func(c *Constructor) { c.logger = l })
}

// WithExecutor overrides the executor bridge.
func WithExecutor(e Executor) Option {
	return optionFunc(func(c *Constructor) { c.executor = e })
}

// ConstructOption configures a single Construct call.
type ConstructOption interface {
	applyConstruct(*constructConfig)
}

type constructOptionFunc func(*constructConfig)

func (f constructOptionFunc) applyConstruct(cfg *constructConfig) { f(cfg) }

type constructConfig struct {
	exactTypeMatch bool
	onlyReceivers  bool
	timeout        time.Duration
}

// ExactTypeMatch requests that the final pool query only return sequences
// whose terminal type equals T exactly.
func ExactTypeMatch() ConstructOption {
	return constructOptionFunc(func(cfg *constructConfig) { cfg.exactTypeMatch = true })
}

// OnlyReceivers requests that the final pool query only return sequences
// usable as a method receiver.
func OnlyReceivers() ConstructOption {
	return constructOptionFunc(func(cfg *constructConfig) { cfg.onlyReceivers = true })
}

// WithTimeout bounds each candidate execution. Zero means no bound (the
// executor is still raced against ctx, but ctx itself carries no
// deadline).
func WithTimeout(d time.Duration) ConstructOption {
	return constructOptionFunc(func(cfg *constructConfig) { cfg.timeout = d })
}

// Constructor is the demand-driven construction entry point: construct(T).
type Constructor struct {
	universe *Universe
	pool     SequenceCollection
	trackers *Trackers
	executor Executor
	rand     *rand.Rand
	logger   Logger
}

// NewConstructor wires a Universe and a SequenceCollection into a
// Constructor, applying defaults: a time-seeded math/rand source, a
// ReflectExecutor, fresh Trackers, and a stdLogger.
func NewConstructor(u *Universe, pool SequenceCollection, opts ...Option) *Constructor {
	c := &Constructor{
		universe: u,
		pool:     pool,
		trackers: NewTrackers(),
		executor: NewReflectExecutor(),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   stdLogger{},
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

// Trackers exposes the Constructor's tracker set for host inspection.
func (c *Constructor) Trackers() *Trackers {
	return c.trackers
}

// Construct searches for, synthesizes, and salvages sequences that produce
// a value of type t.
//
// (a) obtain the producer set for t;
// (b) if empty, mark t UninstantiableTypes, warn, return empty;
// (c) for each producer in discovery order, attempt to synthesize and
//     salvage one sequence;
// (d) return pool.Query(t, ...), which may be empty even after successful
//     intermediate insertions — that is expected, not an error.
func (c *Constructor) Construct(ctx context.Context, t Type, opts ...ConstructOption) ([]*Sequence, error) {
	c.trackers.recordInvocation()

	cfg := &constructConfig{}
	for _, opt := range opts {
		opt.applyConstruct(cfg)
	}

	ops := producers(c.universe, c.trackers, t)
	if len(ops) == 0 {
		c.trackers.MarkUninstantiable(t.rt)
		c.logger.Warnf("%v for %v", errNoProducers, t)
		return nil, nil
	}

	for _, op := range ops {
		seq, err := synthesize(c.pool, c.rand, op)
		if err != nil {
			c.logger.Warnf("skipping producer %v: %v", op, err)
			continue
		}

		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if cfg.timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		}
		c.salvage(runCtx, seq, t)
		cancel()
	}

	return c.pool.Query(t, cfg.exactTypeMatch, cfg.onlyReceivers), nil
}

// ConstructNamed resolves name against the Universe's RegisterNamed
// registry and constructs it, surfacing a ConfigurationError immediately
// if name was never registered.
func (c *Constructor) ConstructNamed(ctx context.Context, name string, opts ...ConstructOption) ([]*Sequence, error) {
	t, err := c.universe.ResolveByName(name)
	if err != nil {
		return nil, err
	}
	return c.Construct(ctx, t, opts...)
}

// salvage executes seq, and inserts it into the pool only if its terminal
// statement completed normally with a non-nil value whose type is
// assignable to requested.
func (c *Constructor) salvage(ctx context.Context, seq *Sequence, requested Type) {
	es := c.executor.Execute(ctx, seq)
	if !es.IsTerminalNormalNonNil() {
		c.logger.Warnf("%v for %v: terminal outcome %v", errExecutionFailed, requested, es.TerminalResult().Outcome)
		return
	}
	if !requested.IsAssignableFrom(seq.Variable(seq.Size() - 1)) {
		return
	}
	c.pool.Add(seq)
}
