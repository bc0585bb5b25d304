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

package proxy

import (
	"fmt"
	"strings"
)

// Variant selects how a proxy manages its channel and what it does when a
// call fails.
type Variant int

const (
	// ClientBase creates its channel once, with the proxy, and never
	// replaces it. Failures are returned as they are.
	ClientBase Variant = iota

	// PerSessionThrowable keeps one channel across calls. A failed call
	// discards the channel and returns the error; the next call creates a
	// new channel.
	PerSessionThrowable

	// PerSessionUnthrowable keeps one channel across calls. A failed call
	// discards the channel and returns zero results with no error.
	PerSessionUnthrowable

	// PerCallThrowable uses a new channel for every call and closes it
	// afterwards. Failures are returned.
	PerCallThrowable

	// PerCallUnthrowable uses a new channel for every call and closes it
	// afterwards. Failures return zero results with no error.
	PerCallUnthrowable

	// PerSessionUnwrapping behaves like PerSessionThrowable, and also hands
	// fault details declared by the method to the proxy's FaultHook, which
	// may translate the error.
	PerSessionUnwrapping
)

// Lifetime is how long a proxy keeps a channel.
type Lifetime int

const (
	// LifetimeInstance channels live as long as the proxy.
	LifetimeInstance Lifetime = iota + 1
	// LifetimeSession channels live until a call fails.
	LifetimeSession
	// LifetimeCall channels live for a single call.
	LifetimeCall
)

// RecoveryPolicy is what a proxy does with the error of a failed call.
type RecoveryPolicy int

const (
	// Propagate returns the error unchanged.
	Propagate RecoveryPolicy = iota + 1
	// Swallow drops the error and returns zero results.
	Swallow
	// Unwrap offers declared fault details to a FaultHook before returning
	// the error.
	Unwrap
)

type variantInfo struct {
	name     string
	lifetime Lifetime
	policy   RecoveryPolicy
}

var _variants = map[Variant]variantInfo{
	ClientBase:            {"ClientBase", LifetimeInstance, Propagate},
	PerSessionThrowable:   {"PerSessionThrowable", LifetimeSession, Propagate},
	PerSessionUnthrowable: {"PerSessionUnthrowable", LifetimeSession, Swallow},
	PerCallThrowable:      {"PerCallThrowable", LifetimeCall, Propagate},
	PerCallUnthrowable:    {"PerCallUnthrowable", LifetimeCall, Swallow},
	PerSessionUnwrapping:  {"PerSessionUnwrapping", LifetimeSession, Unwrap},
}

// Variants returns every valid Variant.
func Variants() []Variant {
	return []Variant{
		ClientBase,
		PerSessionThrowable,
		PerSessionUnthrowable,
		PerCallThrowable,
		PerCallUnthrowable,
		PerSessionUnwrapping,
	}
}

// IsValid reports whether v is a known Variant.
func (v Variant) IsValid() bool {
	_, ok := _variants[v]
	return ok
}

// Lifetime returns how long proxies of this variant keep a channel.
func (v Variant) Lifetime() Lifetime { return _variants[v].lifetime }

// Policy returns what proxies of this variant do with failures.
func (v Variant) Policy() RecoveryPolicy { return _variants[v].policy }

func (v Variant) String() string {
	if info, ok := _variants[v]; ok {
		return info.name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("unknown proxy variant %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// without regard to case.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariant returns the Variant with the given name.
func ParseVariant(name string) (Variant, error) {
	for variant, info := range _variants {
		if strings.EqualFold(info.name, name) {
			return variant, nil
		}
	}
	return 0, fmt.Errorf("unknown proxy variant %q", name)
}

func (l Lifetime) String() string {
	switch l {
	case LifetimeInstance:
		return "instance"
	case LifetimeSession:
		return "session"
	case LifetimeCall:
		return "call"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

func (p RecoveryPolicy) String() string {
	switch p {
	case Propagate:
		return "propagate"
	case Swallow:
		return "swallow"
	case Unwrap:
		return "unwrap"
	default:
		return fmt.Sprintf("RecoveryPolicy(%d)", int(p))
	}
}
