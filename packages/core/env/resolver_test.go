package env

import (
	"reflect"
	"strings"
	"testing"
)

func TestResolverResolve(t *testing.T) {
	t.Setenv("HOOKSPEC_TEST_GRID", "http://grid:4444")

	r := NewResolver()
	r.SetVariables(map[string]string{"baseUrl": "http://shop.local", "user": "alice"})

	tests := []struct {
		input    string
		expected string
	}{
		{"curl {{baseUrl}}/health", "curl http://shop.local/health"},
		{"{{ user }}", "alice"},
		{"{{$HOOKSPEC_TEST_GRID}}/status", "http://grid:4444/status"},
		{"{{missing}}", "{{missing}}"},
		{"no expressions", "no expressions"},
	}

	for _, tt := range tests {
		if got := r.Resolve(tt.input); got != tt.expected {
			t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestResolverFunctions(t *testing.T) {
	r := NewResolver()
	got := r.Resolve("{{randomString(12)}}")
	if len(got) != 12 || strings.Contains(got, "{{") {
		t.Errorf("Resolve(randomString) = %q", got)
	}
	if got := r.Resolve("{{nosuchfunc()}}"); got != "{{nosuchfunc()}}" {
		t.Errorf("Resolve(nosuchfunc) = %q", got)
	}
}

func TestResolverUnresolved(t *testing.T) {
	r := NewResolver()
	r.SetVariable("foo", "bar")

	var warnings []string
	r.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, format)
	})

	got := r.Unresolved("{{foo}} {{bar}} {{$HOOKSPEC_SURELY_UNSET}} {{uuid()}}")
	want := []string{"bar", "$HOOKSPEC_SURELY_UNSET"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unresolved() = %v, want %v", got, want)
	}

	r.Resolve("{{bar}}")
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(warnings))
	}
}

func TestSelect(t *testing.T) {
	envs := map[string]map[string]string{
		"staging": {"baseUrl": "https://staging.shop"},
		"prod":    {"baseUrl": "https://shop"},
	}

	env, err := Select("staging", envs)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if env.Variables["baseUrl"] != "https://staging.shop" {
		t.Errorf("Select() variables = %v", env.Variables)
	}

	if _, err := Select("qa", envs); err == nil || !strings.Contains(err.Error(), "prod, staging") {
		t.Errorf("Select(qa) error = %v", err)
	}

	env, err = Select("", envs)
	if err != nil || len(env.Variables) != 0 {
		t.Errorf("Select(\"\") = %v, %v", env, err)
	}
}

func TestMergeVariablesAndSystemVars(t *testing.T) {
	merged := MergeVariables(map[string]string{"a": "1", "b": "1"}, map[string]string{"b": "2"})
	if merged["a"] != "1" || merged["b"] != "2" {
		t.Errorf("MergeVariables() = %v", merged)
	}

	t.Setenv("HOOKSPEC_VAR_token", "abc")
	vars := SystemVars("HOOKSPEC_VAR_")
	if vars["token"] != "abc" {
		t.Errorf("SystemVars() = %v", vars)
	}
}
