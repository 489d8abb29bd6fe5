package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// token maps a recognized (upper case) fragment of a configuration value to its typed value
type token[T any] struct {
	match string
	value T
}

// tokenTable is the declarative description of an enumerated configuration
// key. Values are matched case-insensitively by substring, in table order.
type tokenTable[T any] struct {
	key    string
	tokens []token[T]
}

// lookupText returns the raw value of key, failing when it is not valid text
func lookupText(env Environment, key string) (string, bool, error) {
	v, ok := env.LookupEnv(key)
	if !ok {
		return "", false, nil
	}
	if !utf8.ValidString(v) {
		return "", true, newConfigError(key, v, "value is not valid UTF-8 text")
	}
	return v, true, nil
}

// resolve returns the typed value for the table key. found is false when the key is absent.
func (t tokenTable[T]) resolve(env Environment) (value T, found bool, err error) {
	raw, found, err := lookupText(env, t.key)
	if err != nil || !found {
		return value, found, err
	}
	upper := strings.ToUpper(raw)
	for _, tok := range t.tokens {
		if strings.Contains(upper, tok.match) {
			return tok.value, true, nil
		}
	}
	return value, true, newConfigError(t.key, raw, fmt.Sprintf("unrecognized value, expected one of %s", t.expected()))
}

func (t tokenTable[T]) expected() string {
	names := make([]string, 0, len(t.tokens))
	for _, tok := range t.tokens {
		names = append(names, tok.match)
	}
	return strings.Join(names, ", ")
}
