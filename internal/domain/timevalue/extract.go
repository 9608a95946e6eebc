package timevalue

import "strings"

// Extractor pulls one time value out of a decoded JSON object, or returns
// Invalid when the field is absent or unusable.
type Extractor func(node map[string]any) int

// Field reads path (dot separated for nested objects) as seconds.
func Field(path string) Extractor {
	return func(node map[string]any) int {
		v, ok := Lookup(node, path)
		if !ok {
			return Invalid
		}
		return Seconds(v)
	}
}

// MillisField reads path as milliseconds.
func MillisField(path string) Extractor {
	return func(node map[string]any) int {
		v, ok := Lookup(node, path)
		if !ok {
			return Invalid
		}
		return Millis(v)
	}
}

// FirstOf tries each extractor in order and returns the first valid result.
func FirstOf(node map[string]any, chain ...Extractor) int {
	if node == nil {
		return Invalid
	}
	for _, ex := range chain {
		if sec := ex(node); sec != Invalid {
			return sec
		}
	}
	return Invalid
}

// Lookup walks a dotted path through nested maps.
func Lookup(node map[string]any, path string) (any, bool) {
	cur := any(node)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
