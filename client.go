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
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/identity"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/cache"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/observability"
	"github.com/askguanyu/CodePlexDevLib-sub007/proxy"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcconfig"
	"github.com/askguanyu/CodePlexDevLib-sub007/svcerrors"
	grpcbinding "github.com/askguanyu/CodePlexDevLib-sub007/transport/grpc"
	httpbinding "github.com/askguanyu/CodePlexDevLib-sub007/transport/http"
	"github.com/askguanyu/CodePlexDevLib-sub007/transport/inproc"
	tchbinding "github.com/askguanyu/CodePlexDevLib-sub007/transport/tchannel"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Client builds proxies and caches the factories, types and instances
// behind them. It is safe for concurrent use.
type Client struct {
	observer  *observability.Observer
	config    *svcconfig.Config
	bindings  *binding.Registry
	hook      proxy.FaultHook
	factories *cache.FactoryCache
	types     *cache.TypeCache
	instances *cache.InstanceCache
	closed    atomic.Bool
}

// New builds a Client.
func New(opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt.apply(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := o.tracer
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}

	bindings, err := binding.NewRegistry(
		httpbinding.Spec(httpbinding.Tracer(tracer), httpbinding.Logger(logger)),
		grpcbinding.Spec(grpcbinding.Logger(logger)),
		tchbinding.Spec(tchbinding.Tracer(tracer), tchbinding.Logger(logger)),
		inproc.Spec(),
	)
	if err != nil {
		return nil, err
	}
	for _, s := range o.specs {
		if err := bindings.Register(s); err != nil {
			return nil, err
		}
	}

	observer := observability.New(observability.Config{
		Logger: logger.Named("svcclient"),
		Scope:  o.scope,
		Levels: levels(o.config),
	})

	factorySize, instanceSize := cacheSizes(o.config)
	if o.factorySize != nil {
		factorySize = *o.factorySize
	}
	if o.instanceSize != nil {
		instanceSize = *o.instanceSize
	}

	factories, err := cache.NewFactoryCache(factorySize, observer.FactoryEvicted)
	if err != nil {
		return nil, err
	}
	instances, err := cache.NewInstanceCache(instanceSize)
	if err != nil {
		return nil, err
	}

	return &Client{
		observer:  observer,
		config:    o.config,
		bindings:  bindings,
		hook:      o.hook,
		factories: factories,
		types:     cache.NewTypeCache(),
		instances: instances,
	}, nil
}

// GetInstance returns a T whose calls go to dest through a proxy of the
// given variant.
//
// With fromCache, callers asking for the same contract, variant and
// destination share one proxy. Without it, every call builds a new proxy
// that is not stored.
//
// T needs a stub generated by svcproxygen. Fault contracts must be declared
// with contract.Cached before the first call for T.
func GetInstance[T any](c *Client, v proxy.Variant, dest Destination, fromCache bool) (T, error) {
	var zero T
	p, err := GetProxy[T](c, v, dest, fromCache)
	if err != nil {
		return zero, err
	}
	return proxy.Stub[T](p)
}

// GetProxy is GetInstance returning the untyped proxy.
func GetProxy[T any](c *Client, v proxy.Variant, dest Destination, fromCache bool) (*proxy.Proxy, error) {
	ct, err := contract.Cached[T]()
	if err != nil {
		return nil, err
	}
	return c.Proxy(ct, v, dest, fromCache)
}

// CreateChannel returns a T whose calls go straight to a new channel to
// dest, without a proxy's recovery policy. The caller owns the channel:
// it is opened on first call and must be closed through the stub's
// invoker, which is returned too.
func CreateChannel[T any](c *Client, dest Destination) (T, *channel.Direct, error) {
	var zero T
	ct, err := contract.Cached[T]()
	if err != nil {
		return zero, nil, err
	}
	f, err := c.Factory(ct, dest)
	if err != nil {
		return zero, nil, err
	}
	ch, err := f.NewChannel()
	if err != nil {
		return zero, nil, err
	}
	inv := channel.Invoker(ch, ct)
	stub, err := proxy.NewStub[T](inv)
	if err != nil {
		ch.Abort()
		return zero, nil, err
	}
	return stub, inv, nil
}

// Proxy returns a proxy of the given contract and variant whose calls go
// to dest. See GetInstance for fromCache.
func (c *Client) Proxy(ct *contract.Contract, v proxy.Variant, dest Destination, fromCache bool) (*proxy.Proxy, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, svcerrors.InvalidArgumentErrorf("contract is required")
	}

	id, err := dest.Identity(ct)
	if err != nil {
		return nil, err
	}
	t, err := c.ProxyType(ct, v)
	if err != nil {
		return nil, err
	}

	build := func() (*proxy.Proxy, error) {
		f, err := c.factory(ct, id, dest.binding)
		if err != nil {
			return nil, err
		}
		return proxy.New(t, f, proxy.WithFaultHook(c.hook), proxy.WithObserver(c.observer))
	}
	if !fromCache {
		return build()
	}

	p, created, err := c.instances.GetOrCreate(instanceKey(ct, v, id), build)
	if err != nil {
		return nil, err
	}
	if created {
		c.observer.InstanceCacheMiss()
	} else {
		c.observer.InstanceCacheHit()
	}
	return p, nil
}

// ProxyType returns the proxy type of a contract and variant, generating it
// on first use.
func (c *Client) ProxyType(ct *contract.Contract, v proxy.Variant) (*proxy.Type, error) {
	t, generated, err := c.types.GetOrGenerate(ct, v)
	if err != nil {
		name := "<nil>"
		if ct != nil {
			name = ct.Name()
		}
		c.observer.TypeGenerationFailed(name, v.String(), err)
		return nil, err
	}
	if generated {
		c.observer.TypeGenerated(ct.Name(), v.String(), t.NumMethod())
	}
	return t, nil
}

// Factory returns the channel factory of a contract at dest, building it
// on first use.
func (c *Client) Factory(ct *contract.Contract, dest Destination) (channel.Factory, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, svcerrors.InvalidArgumentErrorf("contract is required")
	}
	id, err := dest.Identity(ct)
	if err != nil {
		return nil, err
	}
	return c.factory(ct, id, dest.binding)
}

// Invalidate drops the cached proxy of a contract and variant at dest, and
// closes it. Later calls to GetInstance build a new one.
func (c *Client) Invalidate(ct *contract.Contract, v proxy.Variant, dest Destination) (bool, error) {
	if ct == nil {
		return false, svcerrors.InvalidArgumentErrorf("contract is required")
	}
	id, err := dest.Identity(ct)
	if err != nil {
		return false, err
	}
	p, ok := c.instances.Remove(instanceKey(ct, v, id))
	if !ok {
		return false, nil
	}
	return true, p.Close()
}

// Close closes every cached proxy and channel factory. The client cannot
// be used afterwards. Proxies built without the cache are left to their
// owners.
func (c *Client) Close() error {
	if !c.closed.CAS(false, true) {
		return nil
	}

	var err error
	for _, p := range c.instances.Drain() {
		err = multierr.Append(err, p.Close())
	}
	return multierr.Append(err, c.factories.Close())
}

// Logger returns the client's logger.
func (c *Client) Logger() *zap.Logger { return c.observer.Logger() }

// Bindings returns the binding types the client knows.
func (c *Client) Bindings() *binding.Registry { return c.bindings }

func (c *Client) checkOpen() error {
	if c.closed.Load() {
		return svcerrors.FailedPreconditionErrorf("client is closed")
	}
	return nil
}

// factory returns the cached factory of ct at id. explicit is the binding
// of a Via destination, if any.
func (c *Client) factory(ct *contract.Contract, id identity.Identity, explicit binding.Binding) (channel.Factory, error) {
	var bindingName string
	f, created, err := c.factories.GetOrCreate(factoryKey(ct, id), func() (channel.Factory, error) {
		b, address, err := c.endpoint(ct, id, explicit)
		if err != nil {
			return nil, err
		}
		bindingName = b.Name()
		return b.NewFactory(ct, address)
	})
	if err != nil {
		return nil, err
	}
	if created {
		c.observer.FactoryCreated(ct.Name(), bindingName, id.String())
	}
	return f, nil
}

// endpoint resolves id into a binding and an address.
func (c *Client) endpoint(ct *contract.Contract, id identity.Identity, explicit binding.Binding) (binding.Binding, string, error) {
	switch {
	case id.IsDefault():
		e, err := c.config.DefaultEndpoint(ct.Name())
		if err != nil {
			return nil, "", svcerrors.NotFoundErrorf("cannot resolve the default endpoint: %v", err)
		}
		return c.configured(ct, e, "")

	case id.Configuration != "":
		e, ok := c.config.Endpoint(id.Configuration)
		if !ok {
			return nil, "", svcerrors.NotFoundErrorf("no endpoint is configured as %q", id.Configuration)
		}
		return c.configured(ct, e, id.Address)

	case explicit != nil:
		return explicit, id.Address, nil

	default:
		b, err := c.bindings.Build(id.Binding, nil)
		if err != nil {
			return nil, "", err
		}
		return b, id.Address, nil
	}
}

func (c *Client) configured(ct *contract.Contract, e svcconfig.Endpoint, address string) (binding.Binding, string, error) {
	if e.Contract != "" && e.Contract != ct.Name() {
		return nil, "", svcerrors.InvalidArgumentErrorf(
			"endpoint %q serves %q, not %q", e.Name, e.Contract, ct.Name())
	}
	if address == "" {
		address = e.Address
	}
	if err := identity.Validate(address); err != nil {
		return nil, "", err
	}
	b, err := c.bindings.Build(e.Binding, e.Attributes)
	if err != nil {
		return nil, "", err
	}
	return b, address, nil
}

func factoryKey(ct *contract.Contract, id identity.Identity) string {
	return ct.Name() + "#" + id.Key()
}

func instanceKey(ct *contract.Contract, v proxy.Variant, id identity.Identity) cache.InstanceKey {
	return cache.InstanceKey{Contract: ct.Type(), Variant: v, Identity: id.Key()}
}
