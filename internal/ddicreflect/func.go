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

// Package ddicreflect names the underlying Go function behind a registered
// operation for use in diagnostics and String() output.
package ddicreflect

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Func describes a Go function discovered via reflection.
type Func struct {
	Package string
	Name    string
}

func (f Func) String() string {
	if f.Package == "" {
		return f.Name
	}
	return fmt.Sprintf("%v.%v", f.Package, f.Name)
}

// InspectFunc reports the package-qualified name of fn, which must be a
// function value. Closures and methods report the name the Go runtime
// assigns them.
func InspectFunc(fn interface{}) Func {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return Func{Name: rv.Type().String()}
	}

	ptr := rv.Pointer()
	rfn := runtime.FuncForPC(ptr)
	if rfn == nil {
		return Func{Name: "unknown"}
	}

	pkg, name := splitFuncName(rfn.Name())
	return Func{Package: pkg, Name: name}
}

// splitFuncName splits a runtime-qualified function name such as
// "path/to/pkg.Func" or "path/to/pkg.(*Type).Method" into its package and
// function-local parts.
func splitFuncName(full string) (pkg string, name string) {
	if full == "" {
		return "", ""
	}

	slash := strings.LastIndex(full, "/")
	rest := full
	prefix := ""
	if slash >= 0 {
		prefix = full[:slash+1]
		rest = full[slash+1:]
	}

	dot := strings.Index(rest, ".")
	if dot < 0 {
		return "", prefix + rest
	}

	return prefix + rest[:dot], rest[dot+1:]
}
