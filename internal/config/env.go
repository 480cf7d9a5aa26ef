// Package config reads configuration values from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Get returns the value of the environment variable `key` if set.
// If not set, and `key + "_FILE"` is set, the file at that path is read and
// its trimmed contents are returned. If neither are set, def is returned.
func Get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return def
}

// GetInt returns the integer value of the environment variable `key`.
// It parses the result of Get(key, ""). If the variable is unset, def is
// returned; if it is set but not an integer, an error is returned so a
// typo in a device setting is not silently ignored.
func GetInt(key string, def int) (int, error) {
	val := Get(key, "")
	if val == "" {
		return def, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return def, &ParseError{Key: key, Value: val, Err: err}
	}
	return i, nil
}

// GetBool returns the boolean value of the environment variable `key`.
// Recognised true values are: 1, t, true, y, yes (case-insensitive).
// Recognised false values are: 0, f, false, n, no.
func GetBool(key string, def bool) bool {
	if val := Get(key, ""); val != "" {
		switch strings.ToLower(val) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

// ParseError reports an environment variable that could not be parsed.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return "config: " + e.Key + "=" + strconv.Quote(e.Value) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
