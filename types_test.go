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

type Animal interface{ Speak() string }

type Dog struct{}

func (Dog) Speak() string { return "woof" }

type UserID int

func TestIsPrimitive(t *testing.T) {
	t.Parallel()

	assert.True(t, TypeOf(reflect.TypeOf(0)).IsPrimitive())
	assert.True(t, TypeOf(reflect.TypeOf("")).IsPrimitive())
	assert.False(t, TypeOf(reflect.TypeOf(UserID(0))).IsPrimitive())
	assert.False(t, TypeOf(reflect.TypeOf(Dog{})).IsPrimitive())
}

func TestIsNonreceiverType(t *testing.T) {
	t.Parallel()

	assert.True(t, TypeOf(reflect.TypeOf(0)).IsNonreceiverType())
	assert.True(t, TypeOf(reflect.TypeOf("")).IsNonreceiverType())
	assert.False(t, TypeOf(reflect.TypeOf(Dog{})).IsNonreceiverType())
}

func TestIsAssignableFrom(t *testing.T) {
	t.Parallel()

	animal := TypeOf(reflect.TypeOf((*Animal)(nil)).Elem())
	dog := TypeOf(reflect.TypeOf(Dog{}))

	require.True(t, animal.IsAssignableFrom(dog))
	require.False(t, dog.IsAssignableFrom(animal))
	require.True(t, dog.IsAssignableFrom(dog))
}

func TestAreEquivalentConsideringBoxing(t *testing.T) {
	t.Parallel()

	bareInt := TypeOf(reflect.TypeOf(0))
	userID := TypeOf(reflect.TypeOf(UserID(0)))
	bareStr := TypeOf(reflect.TypeOf(""))

	assert.True(t, AreEquivalentConsideringBoxing(bareInt, bareInt), "reflexive")
	assert.True(t, AreEquivalentConsideringBoxing(bareInt, userID))
	assert.True(t, AreEquivalentConsideringBoxing(userID, bareInt), "symmetric")
	assert.False(t, AreEquivalentConsideringBoxing(bareInt, bareStr))
	assert.True(t, AreEquivalentConsideringBoxing(userID, TypeOf(reflect.TypeOf(UserID(0)))), "same named type is trivially equal")
}

func TestAreEquivalentConsideringBoxing_NotTransitiveAcrossNamedTypes(t *testing.T) {
	t.Parallel()

	type OtherID int
	userID := TypeOf(reflect.TypeOf(UserID(0)))
	otherID := TypeOf(reflect.TypeOf(OtherID(0)))

	assert.False(t, AreEquivalentConsideringBoxing(userID, otherID))
}
