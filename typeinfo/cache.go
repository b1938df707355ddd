// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package typeinfo

import (
	"reflect"
	"sync"
)

// cache is responsible for generating, caching and retrieving descriptors.
type cache struct {
	mutex sync.RWMutex
	cache map[reflect.Type]Descriptor
}

var (
	singleCache *cache
	once        sync.Once
)

// Cache enforces the singleton pattern, ensuring access to a single
// instance of cache.
func Cache() *cache {
	once.Do(func() {
		singleCache = &cache{
			cache: make(map[reflect.Type]Descriptor),
		}
	})
	return singleCache
}

// Describe returns the Descriptor of t, generating and caching it as
// required.
func (c *cache) Describe(t reflect.Type) Descriptor {
	c.mutex.RLock()
	d, ok := c.cache[t]
	c.mutex.RUnlock()
	if ok {
		return d
	}

	d = generate(t)

	c.mutex.Lock()
	c.cache[t] = d
	c.mutex.Unlock()
	return d
}

// Len returns the number of cached descriptors.
func (c *cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}
