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

// Package identity resolves the ways a caller can name a destination into a
// single comparable Identity.
//
// A destination is given by any combination of an endpoint configuration
// name, a binding, and a remote address. Host and port forms are turned
// into the http binding with an address whose path is the contract name.
package identity

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/binding"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
)

// HTTPBinding is the binding type that host and port destinations use.
const HTTPBinding = "http"

// Identity names one destination. The zero value is the default endpoint
// of a contract.
type Identity struct {
	// Configuration is the name of an endpoint configuration, if any.
	Configuration string

	// Binding is a binding type name, or the Key of a configured binding.
	Binding string

	// Address is the remote address, if any.
	Address string
}

// Key renders the identity as a cache key. Every segment is length-prefixed
// so no two identities share a key, and the address is compared without
// regard to case.
func (i Identity) Key() string {
	var sb strings.Builder
	writeSegment(&sb, i.Configuration)
	sb.WriteByte('|')
	writeSegment(&sb, i.Binding)
	sb.WriteByte('|')
	writeSegment(&sb, strings.ToLower(i.Address))
	return sb.String()
}

func writeSegment(sb *strings.Builder, s string) {
	sb.WriteString(strconv.Itoa(len(s)))
	sb.WriteByte(':')
	sb.WriteString(s)
}

// Equal reports whether two identities name the same destination.
func (i Identity) Equal(o Identity) bool {
	return i.Key() == o.Key()
}

// IsDefault reports whether the identity is the default endpoint.
func (i Identity) IsDefault() bool {
	return i == Identity{}
}

func (i Identity) String() string {
	switch {
	case i.IsDefault():
		return "default endpoint"
	case i.Configuration != "":
		return "endpoint " + strconv.Quote(i.Configuration)
	default:
		return i.Binding + " " + i.Address
	}
}

// Default names the default endpoint of a contract.
func Default() Identity {
	return Identity{}
}

// Remote names the contract served over http at a "host:port" endpoint.
func Remote(c *contract.Contract, endpoint string) (Identity, error) {
	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		return Identity{}, &svcerrors.AddressFormatError{Address: endpoint, Reason: err.Error()}
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return Identity{}, &svcerrors.AddressFormatError{Address: endpoint, Reason: "port is not a number"}
	}
	return HostPort(c, host, p)
}

// HostPort names the contract served over http at host and port.
func HostPort(c *contract.Contract, host string, port int) (Identity, error) {
	hostport := net.JoinHostPort(host, strconv.Itoa(port))
	if host == "" {
		return Identity{}, &svcerrors.AddressFormatError{Address: hostport, Reason: "host is empty"}
	}
	if port <= 0 || port > 65535 {
		return Identity{}, &svcerrors.AddressFormatError{Address: hostport, Reason: "port is out of range"}
	}

	u := url.URL{Scheme: "http", Host: hostport, Path: "/" + c.Name()}
	return ForBindingType(HTTPBinding, u.String())
}

// Configuration names an endpoint configuration, optionally overriding its
// address.
func Configuration(name string, address ...string) (Identity, error) {
	id := Identity{Configuration: name}
	if len(address) > 0 && address[0] != "" {
		if err := Validate(address[0]); err != nil {
			return Identity{}, err
		}
		id.Address = address[0]
	}
	return id, nil
}

// ForBinding names an address reached through a configured binding.
func ForBinding(b binding.Binding, address string) (Identity, error) {
	if err := Validate(address); err != nil {
		return Identity{}, err
	}
	return Identity{Binding: b.Key(), Address: address}, nil
}

// ForBindingType names an address reached through the default binding of
// the named type.
func ForBindingType(bindingName, address string) (Identity, error) {
	if err := Validate(address); err != nil {
		return Identity{}, err
	}
	return Identity{Binding: bindingName, Address: address}, nil
}

// Validate checks that address is an absolute URI with a scheme and a host,
// like "http://host:port/path" or "inproc://name".
func Validate(address string) error {
	_, err := Parse(address)
	return err
}

// Parse parses an address, failing with *svcerrors.AddressFormatError.
func Parse(address string) (*url.URL, error) {
	if address == "" {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: "address is empty"}
	}
	u, err := url.Parse(address)
	if err != nil {
		reason := err.Error()
		if uerr, ok := err.(*url.Error); ok {
			reason = uerr.Err.Error()
		}
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: reason}
	}
	if u.Scheme == "" {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: "scheme is missing"}
	}
	if u.Host == "" {
		return nil, &svcerrors.AddressFormatError{Address: address, Reason: "host is missing"}
	}
	return u, nil
}
