package common

import (
	"fmt"
	"strings"
	"time"
)

// StringArg returns the named string argument, or fallback when it is
// absent or empty.
func StringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// RequiredStringArg returns the named string argument or an error
// suitable for a tool error result.
func RequiredStringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// BoolArg returns the named boolean argument, false when absent.
func BoolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// IntArg returns the named numeric argument as an int. JSON numbers
// arrive as float64; anything else, or a non-positive value, yields the
// fallback.
func IntArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok && v > 0 {
		return int(v)
	}
	return fallback
}

// TimeArg parses the named argument as RFC 3339. The second return is
// false when the argument is absent or empty.
func TimeArg(args map[string]interface{}, key string) (time.Time, bool, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return t, true, nil
}

// RequiredTimeArg parses the named argument as RFC 3339 and rejects a
// missing value.
func RequiredTimeArg(args map[string]interface{}, key string) (time.Time, error) {
	t, present, err := TimeArg(args, key)
	if err != nil {
		return time.Time{}, err
	}
	if !present {
		return time.Time{}, fmt.Errorf("%s is required", key)
	}
	return t, nil
}

// ListArg splits a comma-separated argument into trimmed entries. An
// absent argument yields nil.
func ListArg(args map[string]interface{}, key string) []string {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
