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

// Package proxy builds proxies: values that implement a service contract by
// forwarding every call to a channel, managing that channel's lifetime and
// recovering from failed calls as their Variant prescribes.
//
// A proxy Type is generated once per contract and Variant. It is a method
// table whose entries validate the arguments, pick a channel according to
// the variant's Lifetime, invoke it, and apply the variant's
// RecoveryPolicy to failures. A Proxy is an instance of a Type bound to a
// channel factory.
//
// Proxies are called by method name through Invoke. Typed stubs produced by
// svcproxygen wrap a Proxy so that it implements the contract interface
// itself; see RegisterStub and Stub.
//
// A Proxy does not lock around calls. Concurrent calls that fail at the
// same time race to replace the session channel; each of them still sees
// its own error and no call is ever made on a channel known to be faulted.
package proxy
