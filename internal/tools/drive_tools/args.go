package drive_tools

import "math"

// stringArg extracts a string argument. Missing and wrongly typed values
// both report false.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts an integer argument. JSON numbers arrive as float64, so a
// fractional value is rejected rather than silently truncated.
func intArg(args map[string]any, key string) (int, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// boundedResultCount resolves the optional maxResults argument against a
// per-tool default, capping it at the hard ceiling.
func boundedResultCount(args map[string]any, fallback, ceiling int) (int, bool) {
	if _, present := args["maxResults"]; !present {
		return fallback, true
	}
	n, ok := intArg(args, "maxResults")
	if !ok || n <= 0 {
		return 0, false
	}
	return min(n, ceiling), true
}
