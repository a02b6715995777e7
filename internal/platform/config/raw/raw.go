// Package raw is the bootstrap env reader used before the logger exists.
// It must not import the logger package
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a namespaced view over environment variables (e.g., "LOG_")
type Conf struct{ prefix string }

// New returns a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix (e.g. "LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(key string) string { return strings.TrimSpace(os.Getenv(c.prefix + key)) }

// Get returns the trimmed env var or def if empty
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetFirst returns the first non-empty value among keys, def when all are empty
func (c Conf) GetFirst(def string, keys ...string) string {
	for _, k := range keys {
		if v := c.value(k); v != "" {
			return v
		}
	}
	return def
}

// GetBool reads 1|true|yes|on as true and anything else as false, def when empty
func (c Conf) GetBool(key string, def bool) bool {
	switch v := strings.ToLower(c.value(key)); v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetInt reads a non-negative integer; empty, signed or non-numeric values give def
func (c Conf) GetInt(key string, def int) int {
	s := c.value(key)
	if s == "" || s[0] == '-' || s[0] == '+' {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
