package validator

import (
	"slices"

	"github.com/borrmann/bautagebuch/pkg/cache"
)

// Parser caches parsed rule lists by their raw markup so that each distinct
// attribute value is parsed once per process.
type Parser struct {
	cache   *cache.LRU[string, []Rule]
	lenient bool
}

// NewParser creates a caching parser. Lenient parsers drop unknown rule names.
func NewParser(capacity int, lenient bool) *Parser {
	return &Parser{
		cache:   cache.NewLRU[string, []Rule](capacity),
		lenient: lenient,
	}
}

// Parse returns the rules for raw, parsing only on a cache miss.
// The returned slice is a copy and may be modified by the caller.
func (p *Parser) Parse(raw string) ([]Rule, error) {
	rules, err := p.cache.GetOrLoad(raw, func() ([]Rule, error) {
		return parse(raw, p.lenient)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(rules), nil
}
