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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Point struct {
	X, Y int
}

func NewPoint(x, y int) *Point { return &Point{X: x, Y: y} }

func TestUniverseRegisterRejectsNonFunc(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	assert.ErrorIs(t, u.Register(42), errNotFunc)
}

func TestUniverseRegisterRejectsNoReturn(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	assert.ErrorIs(t, u.Register(func() {}), errNoReturn)
}

func TestUniverseRegisterClassifiesConstructor(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	require.NoError(t, u.Register(NewPoint))

	ops := u.operationsReturning(reflect.TypeOf(&Point{}))
	require.Len(t, ops, 1)
	assert.Equal(t, Constructor, ops[0].Kind)
	assert.Len(t, ops[0].InputTypes, 2)
}

func TestUniverseRegisterClassifiesNonreceiverInit(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	require.NoError(t, u.Register(func() int { return 3 }))

	ops := u.operationsReturning(reflect.TypeOf(0))
	require.Len(t, ops, 1)
	assert.Equal(t, NonreceiverInit, ops[0].Kind)
}

func TestUniverseRegisterStaticClassification(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	require.NoError(t, u.RegisterStatic(func(p *Point) string { return "" }))

	ops := u.operationsReturning(reflect.TypeOf(""))
	require.Len(t, ops, 1)
	assert.Equal(t, StaticMethod, ops[0].Kind)
}

func TestUniverseRegisterDropsTrailingError(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	require.NoError(t, u.Register(func() (*Point, error) { return &Point{}, nil }))

	ops := u.operationsReturning(reflect.TypeOf(&Point{}))
	require.Len(t, ops, 1)
}

func TestUniverseResolveByNameMissing(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	_, err := u.ResolveByName("nope")
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "nope", cfgErr.Name)
}

func TestUniverseResolveByNameRegistered(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	u.RegisterNamed("Point", reflect.TypeOf(Point{}))

	resolved, err := u.ResolveByName("Point")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(Point{}), resolved.rt)
	assert.True(t, u.isRegisteredType(reflect.TypeOf(Point{})))
}

func TestUniverseMustRegisterPanicsOnError(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	assert.Panics(t, func() { u.MustRegister(123) })
}

func TestUniverseEnsureType(t *testing.T) {
	t.Parallel()

	u := NewUniverse()
	pt := reflect.TypeOf(Point{})

	assert.ErrorIs(t, u.EnsureType(pt), errTypeNotFound)

	u.RegisterType(pt)
	assert.NoError(t, u.EnsureType(pt))
}
