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

// Package testtime scales the timeouts of channel and transport tests for
// slow machines. Set TEST_TIME_SCALE to a multiplier, for example 2.5.
package testtime

import (
	"os"
	"strconv"
	"time"
)

// ScaleEnv is the environment variable holding the multiplier.
const ScaleEnv = "TEST_TIME_SCALE"

var (
	// X is the multiplier read from ScaleEnv.
	X = factor(os.Getenv(ScaleEnv))
	// Millisecond is a millisecond in test time.
	Millisecond = Scale(time.Millisecond)
	// Second is a second in test time.
	Second = Scale(time.Second)
)

func factor(v string) float64 {
	if v == "" {
		return 1
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		panic(ScaleEnv + " must be a positive number, got " + strconv.Quote(v))
	}
	return f
}

// Scale returns d multiplied by X.
func Scale(d time.Duration) time.Duration {
	return time.Duration(X * float64(d))
}

// Sleep sleeps for d in test time.
func Sleep(d time.Duration) {
	time.Sleep(Scale(d))
}

// Poll calls cond every test millisecond until it returns true or timeout,
// in test time, elapses. It reports whether cond became true.
func Poll(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(Scale(timeout))
	for !cond() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(Millisecond)
	}
	return true
}
