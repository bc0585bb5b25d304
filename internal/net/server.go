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

// Package net runs network servers in the background so that hosts can
// start them and stop them later.
package net

import (
	"errors"
	"net"
	"net/http"
	"sync"

	"go.uber.org/atomic"
)

var (
	errServerStopped    = errors.New("the server has been stopped")
	errAlreadyListening = errors.New("the server is already listening")
)

// Server listens on an address and serves connections in the background
// until stopped.
type Server struct {
	addr     string
	serve    func(net.Listener) error
	shutdown func()

	lock     sync.Mutex
	listener net.Listener
	done     chan error
	stopped  atomic.Bool
}

// NewServer builds a Server that hands its listener to serve. shutdown, if
// non-nil, runs after the listener closed and serve returned.
func NewServer(addr string, serve func(net.Listener) error, shutdown func()) *Server {
	return &Server{
		addr:     addr,
		serve:    serve,
		shutdown: shutdown,
		done:     make(chan error, 1),
	}
}

// NewHTTPServer wraps the given http.Server into a Server. The server
// listens on the configured Addr or ":http" if unconfigured.
func NewHTTPServer(s *http.Server) *Server {
	addr := s.Addr
	if addr == "" {
		addr = ":http"
	}
	return NewServer(addr, s.Serve, func() { _ = s.Close() })
}

// Listener returns the listener for this server or nil if the server isn't
// yet listening.
func (s *Server) Listener() net.Listener {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.listener
}

// Addr returns the address the server listens on, or nil if it isn't yet
// listening.
func (s *Server) Addr() net.Addr {
	if l := s.Listener(); l != nil {
		return l.Addr()
	}
	return nil
}

// ListenAndServe starts serving in the background and returns immediately.
//
// An error is returned if the server failed to start up, if the server was
// already listening, or if the server was stopped with Stop().
func (s *Server) ListenAndServe() error {
	if s.stopped.Load() {
		return errServerStopped
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener != nil {
		return errAlreadyListening
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go func(done chan<- error) {
		// serve always returns a non-nil error. For us, it's an error only if
		// we didn't call Stop().
		err := s.serve(listener)
		if !s.stopped.Load() {
			done <- err
		} else {
			done <- nil
		}
	}(s.done)

	s.listener = listener
	return nil
}

// Stop stops the server. An error is returned if the server stopped
// unexpectedly.
//
// Once a server is stopped, it cannot be started again with ListenAndServe.
func (s *Server) Stop() error {
	if s.stopped.Swap(true) {
		return nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener == nil {
		return nil
	}

	closeErr := s.listener.Close()
	s.listener = nil
	serveErr := <-s.done // wait until serve stops
	if s.shutdown != nil {
		s.shutdown()
	}
	if closeErr != nil {
		return closeErr
	}
	return serveErr
}
