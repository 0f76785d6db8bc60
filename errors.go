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

	"github.com/pkg/errors"
)

// ConfigurationError is the sole error ConstructNamed ever returns, raised
// when a user-specified class name cannot be resolved against the Universe.
// Construct itself never returns an error.
type ConfigurationError struct {
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ddic: configuration error resolving %q: %v", e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// The remaining sentinels below are never surfaced to the host; they exist
// only as internal control-flow errors so construct.go and synth.go can
// report *why* a candidate was abandoned to the Logger without allocating a
// descriptive error on every rejected candidate.
var (
	errNoProducers              = errors.New("no producers found for requested type")
	errNoInputsForSlot          = errors.New("pool has no candidate sequence for an input slot")
	errNotEnoughDistinctIndices = errors.New("could not positionally satisfy same-type input slots")
	errExecutionFailed          = errors.New("candidate sequence did not terminate normally with a non-nil value")
)
