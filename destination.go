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

package svcclient

import (
	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/identity"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// Destination says where the calls of a proxy go. The zero value is the
// default endpoint of the contract.
type Destination struct {
	binding binding.Binding
	resolve func(c *contract.Contract) (identity.Identity, error)
}

// DefaultEndpoint is the only configured endpoint whose contract is the
// proxy's contract.
func DefaultEndpoint() Destination {
	return Destination{}
}

// Endpoint is the named endpoint configuration. An address, if given,
// replaces the configured one.
func Endpoint(name string, address ...string) Destination {
	return Destination{resolve: func(*contract.Contract) (identity.Identity, error) {
		return identity.Configuration(name, address...)
	}}
}

// Remote is the contract served over http at a "host:port" endpoint.
func Remote(endpoint string) Destination {
	return Destination{resolve: func(c *contract.Contract) (identity.Identity, error) {
		return identity.Remote(c, endpoint)
	}}
}

// HostPort is the contract served over http at host and port.
func HostPort(host string, port int) Destination {
	return Destination{resolve: func(c *contract.Contract) (identity.Identity, error) {
		return identity.HostPort(c, host, port)
	}}
}

// Via is address reached through the given binding.
func Via(b binding.Binding, address string) Destination {
	return Destination{
		binding: b,
		resolve: func(*contract.Contract) (identity.Identity, error) {
			if b == nil {
				return identity.Identity{}, svcerrors.InvalidArgumentErrorf("binding is required for %q", address)
			}
			return identity.ForBinding(b, address)
		},
	}
}

// ViaType is address reached through a binding of the named type, built
// without attributes.
func ViaType(bindingName, address string) Destination {
	return Destination{resolve: func(*contract.Contract) (identity.Identity, error) {
		return identity.ForBindingType(bindingName, address)
	}}
}

// Identity resolves the destination of a contract.
func (d Destination) Identity(c *contract.Contract) (identity.Identity, error) {
	if d.resolve == nil {
		return identity.Default(), nil
	}
	return d.resolve(c)
}
