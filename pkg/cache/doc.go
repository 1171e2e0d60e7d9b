// Package cache provides a small generic, thread-safe LRU cache.
//
// It backs the rule parser so that each distinct rule-list attribute is
// parsed once, while bounding memory when markup is generated dynamically.
//
//	c := cache.NewLRU[string, []validator.Rule](256)
//	rules, err := c.GetOrLoad(raw, func() ([]validator.Rule, error) {
//	    return validator.Parse(raw)
//	})
package cache

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 256
