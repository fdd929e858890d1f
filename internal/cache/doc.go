// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, int](16)
//	v, err := c.GetOrCreate("key", func() (int, error) { return 42, nil })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
