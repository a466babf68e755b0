package common

// RequiredString extracts a required string argument. The second return
// value is false when the argument is missing or empty.
func RequiredString(args map[string]any, key string) (string, bool) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// OptionalString extracts an optional string argument, returning the
// empty string when absent.
func OptionalString(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

// OptionalInt extracts an optional numeric argument. JSON numbers
// arrive as float64; absent or non-numeric values yield the fallback.
func OptionalInt(args map[string]any, key string, fallback int) int {
	value, ok := args[key].(float64)
	if !ok {
		return fallback
	}
	return int(value)
}

// OptionalBool extracts an optional boolean argument, returning false
// when absent.
func OptionalBool(args map[string]any, key string) bool {
	value, _ := args[key].(bool)
	return value
}
