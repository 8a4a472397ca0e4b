package normalize

// envelopeKeys are the object keys under which list endpoints nest their
// items, in lookup order.
var envelopeKeys = []string{"articles", "threads", "users", "comments", "categories", "data", "items", "results"}

// Page is an unwrapped list response.
type Page struct {
	Items []any
	Meta  map[string]any
}

// Unwrap accepts a bare array or an envelope object and returns its items
// plus any pagination metadata (meta or pagination, or top-level counters).
func Unwrap(raw any) Page {
	p := Page{Items: []any{}, Meta: map[string]any{}}

	if l, ok := raw.([]any); ok {
		p.Items = l
		p.Meta["total"] = float64(len(l))
		return p
	}

	m := object(raw)
	if m == nil {
		return p
	}
	for _, k := range envelopeKeys {
		if l, ok := m[k].([]any); ok {
			p.Items = l
			break
		}
		// {"data": {"articles": [...]}}
		if inner := object(m[k]); inner != nil {
			if nested := Unwrap(inner); len(nested.Items) > 0 {
				p.Items = nested.Items
				for mk, mv := range nested.Meta {
					p.Meta[mk] = mv
				}
				break
			}
		}
	}
	for _, k := range []string{"meta", "pagination"} {
		for mk, mv := range object(m[k]) {
			p.Meta[mk] = mv
		}
	}
	for _, k := range []string{"total", "page", "limit", "totalPages", "total_pages"} {
		if v, ok := m[k]; ok {
			p.Meta[k] = v
		}
	}
	if _, ok := p.Meta["total"]; !ok {
		p.Meta["total"] = float64(len(p.Items))
	}
	return p
}

// Entity unwraps a single-entity response such as {"article": {...}} or
// {"data": {...}}. Objects without one of keys are returned as is.
func Entity(raw any, keys ...string) any {
	m := object(raw)
	if m == nil {
		return raw
	}
	lookup := make([]string, 0, len(keys)+1)
	lookup = append(lookup, keys...)
	for _, k := range append(lookup, "data") {
		if inner := object(m[k]); inner != nil {
			return inner
		}
	}
	return raw
}

// Slice unwraps raw and maps every item through fn.
func Slice[T any](raw any, fn func(any) T) ([]T, map[string]any) {
	p := Unwrap(raw)
	out := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return out, p.Meta
}
