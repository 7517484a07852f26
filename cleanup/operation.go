// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cleanup

import (
	"fmt"
	"io"
	"reflect"
)

// Func is a cleanup operation. It takes no arguments and reports failure by returning an error.
type Func func() error

// Close implements io.Closer, so a Func can be handed to code that expects one.
func (f Func) Close() error {
	return f()
}

// Closer adapts an io.Closer to a Func.
// It returns nil if c is nil, holds a nil pointer or is a nil Func, so that the operation is
// dropped when appended. Other nil values such as a nil map are kept: their Close method may
// work without a receiver.
func Closer(c io.Closer) Func {
	if isNil(c) {
		return nil
	}

	return c.Close
}

// step is an operation together with the label used when reporting its outcome.
type step struct {
	label string
	fn    Func
}

// closerLabel returns the label used for closers added without an explicit label.
func closerLabel(c io.Closer) string {
	return fmt.Sprintf("close %T", c)
}

func isNil(c io.Closer) bool {
	if c == nil {
		return true
	}

	if f, ok := c.(Func); ok {
		return f == nil
	}

	rv := reflect.ValueOf(c)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
