package env

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Environment is a named set of plan variables.
type Environment struct {
	Name      string
	Variables map[string]string
}

// Select picks the environment called name from envs. An empty name selects
// no variables.
func Select(name string, envs map[string]map[string]string) (*Environment, error) {
	env := &Environment{Name: name, Variables: make(map[string]string)}
	if name == "" {
		return env, nil
	}

	vars, ok := envs[name]
	if !ok {
		return nil, fmt.Errorf("environment %q not defined (available: %s)", name, strings.Join(names(envs), ", "))
	}
	for k, v := range vars {
		env.Variables[k] = v
	}
	return env, nil
}

// MergeVariables merges sources in order; later sources win.
func MergeVariables(sources ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

// SystemVars returns process environment variables starting with prefix,
// with the prefix removed.
func SystemVars(prefix string) map[string]string {
	result := make(map[string]string)
	for _, e := range os.Environ() {
		key, value, ok := strings.Cut(e, "=")
		if !ok || prefix == "" || len(key) <= len(prefix) || !strings.HasPrefix(key, prefix) {
			continue
		}
		result[key[len(prefix):]] = value
	}
	return result
}

func names(envs map[string]map[string]string) []string {
	out := make([]string, 0, len(envs))
	for name := range envs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
