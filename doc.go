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

// Package svcclient builds client proxies for service contracts.
//
// A service contract is a Go interface. A Client turns a contract, a proxy
// variant and a destination into a proxy: a value implementing the
// contract whose calls travel over channels to the destination. The
// variant decides how long a channel lives and what happens to a call's
// error.
//
//	client, err := svcclient.New(svcclient.WithConfig(cfg))
//	...
//	calc, err := svcclient.GetInstance[calculator.Calculator](
//		client, proxy.PerSessionThrowable, svcclient.Endpoint("calculator"), true)
//	...
//	sum, err := calc.Add(ctx, 1, 2)
//
// Clients cache what they build. Channel factories are cached per contract
// and destination, proxy types per contract and variant, and proxies per
// contract, variant and destination when asked to. Nothing is evicted
// unless the client is configured with bounded caches or Invalidate is
// called.
//
// Typed proxies need a stub generated by svcproxygen for the contract.
// Proxy returns the untyped proxy, which needs none.
package svcclient
