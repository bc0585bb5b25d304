// Copyright (c) 2026 askguanyu
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

package svcerrors

import "fmt"

// AddressFormatError is returned when a destination address cannot be
// parsed. It is raised while an endpoint identity is built, before any
// channel exists, and is never retried.
type AddressFormatError struct {
	Address string
	Reason  string
}

func (e *AddressFormatError) Error() string {
	return fmt.Sprintf("malformed address %q: %s", e.Address, e.Reason)
}

// Status maps the error to CodeInvalidArgument.
func (e *AddressFormatError) Status() *Status {
	return Newf(CodeInvalidArgument, "%s", e.Error()).WithName("address-format")
}

// TypeGenerationError is returned when a proxy type cannot be generated for
// a contract and variant. Failures are not cached: every later request for
// the same pair tries again and fails the same way.
type TypeGenerationError struct {
	Contract string
	Variant  string
	Reason   string
}

func (e *TypeGenerationError) Error() string {
	if e.Variant == "" {
		return fmt.Sprintf("cannot generate proxy type for %q: %s", e.Contract, e.Reason)
	}
	return fmt.Sprintf("cannot generate %s proxy type for %q: %s", e.Variant, e.Contract, e.Reason)
}

// Status maps the error to CodeInternal.
func (e *TypeGenerationError) Status() *Status {
	return Newf(CodeInternal, "%s", e.Error()).WithName("type-generation")
}
