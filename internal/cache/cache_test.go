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

package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel/channeltest"
	"github.com/askguanyu/CodePlexDevLib-sub007/api/contract"
	"github.com/askguanyu/CodePlexDevLib-sub007/internal/examples/calculator"
	"github.com/askguanyu/CodePlexDevLib-sub007/proxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type closeFailure struct {
	*channeltest.FakeFactory
	err error
}

func (f closeFailure) Close() error {
	_ = f.FakeFactory.Close()
	return f.err
}

func TestFactoryCache(t *testing.T) {
	c, err := NewFactoryCache(0, nil)
	require.NoError(t, err)

	var builds int
	build := func() (channel.Factory, error) {
		builds++
		return channeltest.ValueFactory(nil), nil
	}

	a, created, err := c.GetOrCreate("a", build)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := c.GetOrCreate("a", build)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, a, again)
	assert.Equal(t, 1, builds)

	_, _, err = c.GetOrCreate("b", func() (channel.Factory, error) { return nil, errors.New("no route") })
	assert.EqualError(t, err, "no route")
	_, ok := c.Get("b")
	assert.False(t, ok, "failures are not cached")

	_, _, err = c.GetOrCreate("b", build)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Keys())
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Close())
	assert.True(t, a.(*channeltest.FakeFactory).Closed())
	assert.Zero(t, c.Len())
}

func TestFactoryCacheConcurrent(t *testing.T) {
	c, err := NewFactoryCache(0, nil)
	require.NoError(t, err)

	var (
		builds atomic.Int32
		wg     sync.WaitGroup
	)
	results := make([]channel.Factory, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, _, err := c.GetOrCreate("calc", func() (channel.Factory, error) {
				builds.Inc()
				return channeltest.ValueFactory(nil), nil
			})
			assert.NoError(t, err)
			results[i] = f
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, f := range results {
		assert.Same(t, results[0], f)
	}
}

func TestFactoryCacheBounded(t *testing.T) {
	var evictedKeys []string
	c, err := NewFactoryCache(2, func(key string, err error) {
		evictedKeys = append(evictedKeys, key)
		assert.NoError(t, err)
	})
	require.NoError(t, err)

	factories := make(map[string]*channeltest.FakeFactory)
	for _, key := range []string{"a", "b", "c"} {
		key := key
		_, _, err := c.GetOrCreate(key, func() (channel.Factory, error) {
			f := channeltest.ValueFactory(nil)
			factories[key] = f
			return f, nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a"}, evictedKeys)
	assert.True(t, factories["a"].Closed(), "evicted factories are closed")
	assert.False(t, factories["b"].Closed())
	assert.Equal(t, []string{"b", "c"}, c.Keys())

	require.NoError(t, c.Close())
	assert.True(t, factories["c"].Closed())
	assert.Equal(t, []string{"a"}, evictedKeys, "Close does not report evictions")
}

func TestFactoryCacheCloseErrors(t *testing.T) {
	c, err := NewFactoryCache(0, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		i := i
		_, _, err := c.GetOrCreate(fmt.Sprint(i), func() (channel.Factory, error) {
			return closeFailure{channeltest.ValueFactory(nil), fmt.Errorf("close %d", i)}, nil
		})
		require.NoError(t, err)
	}

	err = c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close 0")
	assert.Contains(t, err.Error(), "close 1")
}

func TestTypeCacheIdempotentConcurrentGeneration(t *testing.T) {
	c := NewTypeCache()
	var generated atomic.Int32
	c.generate = func(ct *contract.Contract, v proxy.Variant) (*proxy.Type, error) {
		generated.Inc()
		return proxy.Generate(ct, v)
	}

	ct := calculator.Contract()
	const n = 64
	types := make([]*proxy.Type, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			typ, _, err := c.GetOrGenerate(ct, proxy.PerSessionThrowable)
			assert.NoError(t, err)
			types[i] = typ
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), generated.Load(), "exactly one type is generated")
	for _, typ := range types {
		assert.Same(t, types[0], typ, "every caller sees the same type")
	}

	other, created, err := c.GetOrGenerate(ct, proxy.PerCallThrowable)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotSame(t, types[0], other, "variants get their own type")
	assert.Equal(t, 2, c.Len())
}

func TestTypeCacheDoesNotCacheFailures(t *testing.T) {
	c := NewTypeCache()
	var attempts int
	c.generate = func(ct *contract.Contract, v proxy.Variant) (*proxy.Type, error) {
		attempts++
		return proxy.Generate(ct, v)
	}

	ct := calculator.Contract()
	for i := 0; i < 3; i++ {
		_, _, err := c.GetOrGenerate(ct, proxy.Variant(77))
		assert.Error(t, err)
	}
	assert.Equal(t, 3, attempts, "each request retries generation")
	assert.Zero(t, c.Len())

	_, ok := c.Load(ct, proxy.Variant(77))
	assert.False(t, ok)
}

func newProxy(t *testing.T, v proxy.Variant) *proxy.Proxy {
	typ, err := proxy.Generate(calculator.Contract(), v)
	require.NoError(t, err)
	p, err := proxy.New(typ, channeltest.ValueFactory(&calculator.Service{}))
	require.NoError(t, err)
	return p
}

func TestInstanceCache(t *testing.T) {
	for _, size := range []int{0, 8} {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			c, err := NewInstanceCache(size)
			require.NoError(t, err)

			key := InstanceKey{
				Contract: calculator.Contract().Type(),
				Variant:  proxy.PerSessionThrowable,
				Identity: "0:|4:http|21:http://calc:8080/calc",
			}

			var builds atomic.Int32
			build := func() (*proxy.Proxy, error) {
				builds.Inc()
				return newProxy(t, proxy.PerSessionThrowable), nil
			}

			var wg sync.WaitGroup
			results := make([]*proxy.Proxy, 20)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					p, _, err := c.GetOrCreate(key, build)
					assert.NoError(t, err)
					results[i] = p
				}(i)
			}
			wg.Wait()
			assert.Equal(t, int32(1), builds.Load())
			for _, p := range results {
				assert.Same(t, results[0], p)
			}

			otherKey := key
			otherKey.Variant = proxy.PerCallThrowable
			other, created, err := c.GetOrCreate(otherKey, func() (*proxy.Proxy, error) {
				return newProxy(t, proxy.PerCallThrowable), nil
			})
			require.NoError(t, err)
			assert.True(t, created)
			assert.NotSame(t, results[0], other)
			assert.Equal(t, 2, c.Len())

			removed, ok := c.Remove(key)
			require.True(t, ok)
			assert.Same(t, results[0], removed)
			_, ok = c.Remove(key)
			assert.False(t, ok)

			_, _, err = c.GetOrCreate(key, func() (*proxy.Proxy, error) { return nil, errors.New("nope") })
			assert.EqualError(t, err, "nope")
			_, ok = c.Load(key)
			assert.False(t, ok)

			drained := c.Drain()
			assert.Equal(t, []*proxy.Proxy{other}, drained)
			assert.Zero(t, c.Len())
		})
	}
}

func TestInstanceCacheBoundedEviction(t *testing.T) {
	c, err := NewInstanceCache(1)
	require.NoError(t, err)

	first := InstanceKey{Contract: calculator.Contract().Type(), Variant: proxy.ClientBase, Identity: "a"}
	second := first
	second.Identity = "b"

	p1, _, err := c.GetOrCreate(first, func() (*proxy.Proxy, error) { return newProxy(t, proxy.ClientBase), nil })
	require.NoError(t, err)
	_, _, err = c.GetOrCreate(second, func() (*proxy.Proxy, error) { return newProxy(t, proxy.ClientBase), nil })
	require.NoError(t, err)

	_, ok := c.Load(first)
	assert.False(t, ok, "least recently used proxy is evicted")
	assert.Equal(t, 1, c.Len())

	res, err := p1.Invoke("Sum", []int{1, 1})
	require.NoError(t, err, "evicted proxies stay usable")
	assert.Equal(t, []interface{}{2}, res)
}
