package config

import "os"

// Environment is the source of the process configuration keys.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// EnvironmentFunc adapts a lookup function, typically os.LookupEnv, to Environment.
type EnvironmentFunc func(key string) (string, bool)

// LookupEnv implements Environment
func (f EnvironmentFunc) LookupEnv(key string) (string, bool) {
	return f(key)
}

// OSEnvironment reads the process environment
var OSEnvironment Environment = EnvironmentFunc(os.LookupEnv)

// MapEnvironment is an in-memory Environment, mostly useful in tests.
type MapEnvironment map[string]string

// LookupEnv implements Environment
func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
