package naming

import (
	"github.com/tidwall/gjson"
)

// strategy extracts a name from one response shape. ok is false when the shape is not its own.
type strategy struct {
	name    string
	extract func(root gjson.Result, code string) (string, bool)
}

func pathStrategy(name string, paths ...string) strategy {
	return strategy{
		name: name,
		extract: func(root gjson.Result, _ string) (string, bool) {
			for _, p := range paths {
				if v := root.Get(p); v.Type == gjson.String && v.String() != "" {
					return v.String(), true
				}
			}
			return "", false
		},
	}
}

// localizedStrategy reads Name_<code> / name_<code> fields.
var localizedStrategy = strategy{
	name: "localized-field",
	extract: func(root gjson.Result, code string) (string, bool) {
		for _, field := range []string{"Name_" + code, "name_" + code, "names." + code} {
			if v := root.Get(field); v.Type == gjson.String && v.String() != "" {
				return v.String(), true
			}
		}
		return "", false
	},
}

// strategies are tried in order; the first hit wins.
var strategies = []strategy{
	localizedStrategy,
	pathStrategy("flat", "name", "Name"),
	pathStrategy("data", "data.name", "data.Name"),
	pathStrategy("items", "items.0.name", "items.0.Name"),
	pathStrategy("results", "results.0.name", "Results.0.Name"),
}

// extractName runs the strategies against body.
func extractName(body []byte, code string) (string, string, bool) {
	if !gjson.ValidBytes(body) {
		return "", "", false
	}
	root := gjson.ParseBytes(body)
	for _, s := range strategies {
		if name, ok := s.extract(root, code); ok {
			return name, s.name, true
		}
	}
	return "", "", false
}
