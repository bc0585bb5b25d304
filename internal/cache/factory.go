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
	"sort"
	"sync"

	"github.com/askguanyu/CodePlexDevLib-sub007/api/channel"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/multierr"
)

// FactoryCache holds one channel factory per key. Lookups and inserts are
// serialized by a single lock, held while a missing factory is built.
type FactoryCache struct {
	mu        sync.Mutex
	factories map[string]channel.Factory
	lru       *lru.Cache
	evicted   []evictedFactory
	onEvict   func(key string, err error)
}

type evictedFactory struct {
	key     string
	factory channel.Factory
}

// NewFactoryCache returns a FactoryCache. A positive size bounds the cache;
// factories evicted to make room are closed and reported to onEvict, if
// set.
func NewFactoryCache(size int, onEvict func(key string, err error)) (*FactoryCache, error) {
	c := &FactoryCache{onEvict: onEvict}
	if size <= 0 {
		c.factories = make(map[string]channel.Factory)
		return c, nil
	}

	cache, err := lru.NewWithEvict(size, func(key, value interface{}) {
		// Called from Add with c.mu held; the factory is closed after the
		// lock is released.
		c.evicted = append(c.evicted, evictedFactory{key: key.(string), factory: value.(channel.Factory)})
	})
	if err != nil {
		return nil, err
	}
	c.lru = cache
	return c, nil
}

// GetOrCreate returns the factory stored under key, building and storing
// it first if it is missing. created reports whether build ran. Build
// failures are returned and nothing is stored.
func (c *FactoryCache) GetOrCreate(key string, build func() (channel.Factory, error)) (f channel.Factory, created bool, err error) {
	c.mu.Lock()
	if f, ok := c.get(key); ok {
		c.mu.Unlock()
		return f, false, nil
	}

	f, err = build()
	if err != nil {
		c.mu.Unlock()
		return nil, false, err
	}
	c.put(key, f)
	evicted := c.evicted
	c.evicted = nil
	c.mu.Unlock()

	for _, e := range evicted {
		err := e.factory.Close()
		if c.onEvict != nil {
			c.onEvict(e.key, err)
		}
	}
	return f, true, nil
}

// Get returns the factory stored under key.
func (c *FactoryCache) Get(key string) (channel.Factory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(key)
}

func (c *FactoryCache) get(key string) (channel.Factory, bool) {
	if c.lru != nil {
		v, ok := c.lru.Get(key)
		if !ok {
			return nil, false
		}
		return v.(channel.Factory), true
	}
	f, ok := c.factories[key]
	return f, ok
}

func (c *FactoryCache) put(key string, f channel.Factory) {
	if c.lru != nil {
		c.lru.Add(key, f)
		return
	}
	c.factories[key] = f
}

// Len returns the number of cached factories.
func (c *FactoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lru != nil {
		return c.lru.Len()
	}
	return len(c.factories)
}

// Keys returns the keys of the cached factories in sorted order.
func (c *FactoryCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []string
	if c.lru != nil {
		for _, k := range c.lru.Keys() {
			keys = append(keys, k.(string))
		}
	} else {
		for k := range c.factories {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Close closes and drops every cached factory.
func (c *FactoryCache) Close() error {
	c.mu.Lock()
	var factories []channel.Factory
	if c.lru != nil {
		for _, k := range c.lru.Keys() {
			if v, ok := c.lru.Peek(k); ok {
				factories = append(factories, v.(channel.Factory))
			}
		}
		c.lru.Purge()
		// Purge reports every entry as evicted; they are closed below.
		c.evicted = nil
	} else {
		for _, f := range c.factories {
			factories = append(factories, f)
		}
		c.factories = make(map[string]channel.Factory)
	}
	c.mu.Unlock()

	var err error
	for _, f := range factories {
		err = multierr.Append(err, f.Close())
	}
	return err
}
