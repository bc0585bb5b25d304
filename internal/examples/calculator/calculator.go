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

// Package calculator is a small service contract used by examples and tests
// across the module.
package calculator

//go:generate svcproxygen -in calculator.go -out calculator_stubs.go -types Calculator

import (
	"context"
	"fmt"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// DivideByZero is the fault detail returned by Divide.
type DivideByZero struct {
	Dividend int `json:"dividend"`
}

// Arithmetic is embedded by Calculator.
type Arithmetic interface {
	Add(ctx context.Context, a, b int) (int, error)
	Divide(ctx context.Context, a, b int) (int, error)
}

// Calculator is the service contract.
type Calculator interface {
	Arithmetic

	Sum(values ...int) int
	Describe(ctx context.Context) (string, error)
	Reset(ctx context.Context) error
}

// The contract is discovered at package initialization so that its fault
// contracts are in place before any client asks for a Calculator.
var _contract = mustContract()

// Contract returns the Calculator contract with its fault contracts.
func Contract() *contract.Contract { return _contract }

func mustContract() *contract.Contract {
	c, err := contract.Cached[Calculator](contract.WithFault("Divide", DivideByZero{}))
	if err != nil {
		panic(err)
	}
	return c
}

// Service implements Calculator. It counts the calls it served.
type Service struct {
	Name string

	mu    sync.Mutex
	calls int
}

var _ Calculator = (*Service)(nil)

func (s *Service) served() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

// Calls returns how many calls the service served.
func (s *Service) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Add returns a+b.
func (s *Service) Add(ctx context.Context, a, b int) (int, error) {
	s.served()
	return a + b, nil
}

// Divide returns a/b, or a DivideByZero fault.
func (s *Service) Divide(ctx context.Context, a, b int) (int, error) {
	s.served()
	if b == 0 {
		return 0, svcerrors.NewFault(DivideByZero{Dividend: a}, "cannot divide %d by zero", a)
	}
	return a / b, nil
}

// Sum adds all values.
func (s *Service) Sum(values ...int) int {
	s.served()
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// Describe returns the service name.
func (s *Service) Describe(ctx context.Context) (string, error) {
	s.served()
	return fmt.Sprintf("calculator %q", s.Name), nil
}

// Reset resets the call counter.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.calls = 0
	s.mu.Unlock()
	return nil
}
