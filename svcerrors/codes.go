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

import (
	"fmt"
	"strconv"
	"strings"
)

// Code classifies a failed service call. The values match gRPC status codes
// so that bindings can translate them without a lookup table.
type Code int

const (
	// CodeOK is returned on success and never carried by a Status.
	CodeOK Code = 0

	// CodeCancelled means the caller gave up on the call.
	CodeCancelled Code = 1

	// CodeUnknown is used for errors that carry no classification, including
	// any plain Go error returned by a channel.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the call was malformed regardless of the
	// state of the system: a bad address, a wrong argument count or type.
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means the call did not complete in time.
	CodeDeadlineExceeded Code = 4

	// CodeNotFound means a named endpoint, binding or procedure does not exist.
	CodeNotFound Code = 5

	// CodeAlreadyExists means a registration collided with an existing one.
	CodeAlreadyExists Code = 6

	// CodePermissionDenied means the caller may not perform the call.
	CodePermissionDenied Code = 7

	// CodeResourceExhausted means a quota or capacity limit was hit.
	CodeResourceExhausted Code = 8

	// CodeFailedPrecondition means the system is not in a state that allows
	// the call, for example a channel that was already closed.
	CodeFailedPrecondition Code = 9

	// CodeAborted means the call was aborted, usually by a concurrent change.
	CodeAborted Code = 10

	// CodeOutOfRange means an argument was past the valid range.
	CodeOutOfRange Code = 11

	// CodeUnimplemented means the remote side does not serve the procedure.
	CodeUnimplemented Code = 12

	// CodeInternal means an invariant of this library or of the remote side
	// was broken. Proxy type generation failures use this code.
	CodeInternal Code = 13

	// CodeUnavailable means the remote side could not be reached. Retrying
	// with a fresh channel may succeed.
	CodeUnavailable Code = 14

	// CodeDataLoss means unrecoverable data loss or corruption.
	CodeDataLoss Code = 15

	// CodeUnauthenticated means the call lacked valid credentials.
	CodeUnauthenticated Code = 16
)

var (
	_codeToString = map[Code]string{
		CodeOK:                 "ok",
		CodeCancelled:          "cancelled",
		CodeUnknown:            "unknown",
		CodeInvalidArgument:    "invalid-argument",
		CodeDeadlineExceeded:   "deadline-exceeded",
		CodeNotFound:           "not-found",
		CodeAlreadyExists:      "already-exists",
		CodePermissionDenied:   "permission-denied",
		CodeResourceExhausted:  "resource-exhausted",
		CodeFailedPrecondition: "failed-precondition",
		CodeAborted:            "aborted",
		CodeOutOfRange:         "out-of-range",
		CodeUnimplemented:      "unimplemented",
		CodeInternal:           "internal",
		CodeUnavailable:        "unavailable",
		CodeDataLoss:           "data-loss",
		CodeUnauthenticated:    "unauthenticated",
	}
	_stringToCode = make(map[string]Code, len(_codeToString))
)

func init() {
	for c, s := range _codeToString {
		_stringToCode[s] = c
	}
}

// String returns the dashed lower-case name of the code, or its number if
// the code is not known.
func (c Code) String() string {
	if s, ok := _codeToString[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if !ok {
		return nil, fmt.Errorf("unknown code: %d", int(c))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	code, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = code
	return nil
}
