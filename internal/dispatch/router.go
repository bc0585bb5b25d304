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

package dispatch

import (
	"context"
	"sort"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// Router maps service names to the Handlers serving them. Service names
// are contract names.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]*Handler
}

// NewRouter builds an empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]*Handler)}
}

// Register adds h under its contract name. Registering a second handler
// for the same contract fails.
func (r *Router) Register(h *Handler) error {
	name := h.Contract().Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[name]; ok {
		return svcerrors.Newf(svcerrors.CodeAlreadyExists, "service %q is already registered", name)
	}
	r.handlers[name] = h
	return nil
}

// Choose returns the Handler registered for service.
func (r *Router) Choose(service string) (*Handler, error) {
	r.mu.RLock()
	h, ok := r.handlers[service]
	r.mu.RUnlock()
	if !ok {
		return nil, svcerrors.UnimplementedErrorf("unrecognized service %q", service)
	}
	return h, nil
}

// Handle routes a call to the handler of service.
func (r *Router) Handle(ctx context.Context, service, method string, body []byte) ([]byte, error) {
	h, err := r.Choose(service)
	if err != nil {
		return nil, err
	}
	return h.Handle(ctx, method, body)
}

// Services returns the registered service names, sorted.
func (r *Router) Services() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
