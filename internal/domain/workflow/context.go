package workflow

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Context accumulates step results keyed by step id.
type Context map[string]any

// Clone returns a shallow copy of the context. A nil receiver yields an empty
// context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Lookup resolves a gjson path such as "fetch.items.0.title" against the JSON
// form of the context. Integral numbers without a fraction or exponent come
// back as int; other numbers as float64.
func (c Context) Lookup(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	if v, ok := c[path]; ok {
		return v, true
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, false
	}
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return nil, false
	}
	return resultValue(res), true
}

func resultValue(res gjson.Result) any {
	switch {
	case res.Type == gjson.Number:
		if isIntegerLiteral(res.Raw) {
			if n, err := strconv.ParseInt(res.Raw, 10, 0); err == nil {
				return int(n)
			}
		}
		return res.Num
	case res.IsArray():
		items := res.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = resultValue(item)
		}
		return out
	case res.IsObject():
		out := map[string]any{}
		res.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = resultValue(value)
			return true
		})
		return out
	default:
		return res.Value()
	}
}

func isIntegerLiteral(raw string) bool {
	return raw != "" && !strings.ContainsAny(raw, ".eE")
}
