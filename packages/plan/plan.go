// Package plan loads YAML suite plans and binds them to runner classes.
package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
)

// Extensions are the file suffixes of plan files.
var Extensions = []string{".hookspec.yaml", ".hookspec.yml"}

type Plan struct {
	Path         string                       `yaml:"-"`
	Suite        string                       `yaml:"suite"`
	Variables    map[string]string            `yaml:"variables,omitempty"`
	Environments map[string]map[string]string `yaml:"environments,omitempty"`
	Classes      []ClassSpec                  `yaml:"classes"`
}

type ClassSpec struct {
	Name  string     `yaml:"name"`
	Hooks []HookSpec `yaml:"hooks,omitempty"`
	Tests []TestSpec `yaml:"tests,omitempty"`
}

type HookSpec struct {
	Name   string       `yaml:"name"`
	Kinds  []hooks.Kind `yaml:"kinds"`
	Groups []string     `yaml:"groups,omitempty"`
	// Retry is the number of retries. Nil means a failure stops the run.
	Retry   *int         `yaml:"retry,omitempty"`
	Run     string       `yaml:"run,omitempty"`
	WaitFor *WaitForSpec `yaml:"wait_for,omitempty"`
}

type WaitForSpec struct {
	URL      string        `yaml:"url"`
	Status   int           `yaml:"status,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty"`
}

type TestSpec struct {
	Name   string   `yaml:"name"`
	Groups []string `yaml:"groups,omitempty"`
	Run    string   `yaml:"run,omitempty"`
}

// ValidationError lists every problem found in a plan document.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	name := e.Path
	if name == "" {
		name = "plan"
	}
	return fmt.Sprintf("%s is invalid: %s", name, strings.Join(e.Problems, "; "))
}

// ParseFile reads and parses the plan at path.
func ParseFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return Parse(data, path)
}

// Parse validates data and decodes it into a Plan.
func Parse(data []byte, path string) (*Plan, error) {
	if err := Validate(data, path); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	p := &Plan{}
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", displayName(path), err)
	}
	p.Path = path

	if problems := p.check(); len(problems) > 0 {
		return nil, &ValidationError{Path: path, Problems: problems}
	}
	return p, nil
}

// Validate checks data against the plan schema.
func Validate(data []byte, path string) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", displayName(path), err)
	}
	if doc == nil {
		return &ValidationError{Path: path, Problems: []string{"document is empty"}}
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting %s: %w", displayName(path), err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schemaJSON), gojsonschema.NewBytesLoader(docJSON))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ValidationError{Path: path, Problems: problems}
}

// check reports problems the schema cannot express.
func (p *Plan) check() []string {
	var problems []string
	classes := make(map[string]bool)
	for _, c := range p.Classes {
		if classes[c.Name] {
			problems = append(problems, fmt.Sprintf("duplicate class %q", c.Name))
		}
		classes[c.Name] = true

		hookNames := make(map[string]bool)
		for _, h := range c.Hooks {
			if hookNames[h.Name] {
				problems = append(problems, fmt.Sprintf("class %s: duplicate hook %q", c.Name, h.Name))
			}
			hookNames[h.Name] = true
			if onlyMarker(h.Kinds) {
				problems = append(problems, fmt.Sprintf("class %s: hook %s has no phase besides firefox-only", c.Name, h.Name))
			}
		}

		tests := make(map[string]bool)
		for _, t := range c.Tests {
			if tests[t.Name] {
				problems = append(problems, fmt.Sprintf("class %s: duplicate test %q", c.Name, t.Name))
			}
			tests[t.Name] = true
		}
	}
	return problems
}

func onlyMarker(kinds []hooks.Kind) bool {
	for _, k := range kinds {
		if k != hooks.FirefoxOnly {
			return false
		}
	}
	return true
}

// Dir returns the directory relative commands of the plan run in.
func (p *Plan) Dir() string {
	if p.Path == "" {
		return ""
	}
	return filepath.Dir(p.Path)
}

// TestCount returns the number of tests declared by the plan.
func (p *Plan) TestCount() int {
	n := 0
	for _, c := range p.Classes {
		n += len(c.Tests)
	}
	return n
}

// IsPlanFile reports whether path has a plan file suffix.
func IsPlanFile(path string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Find expands args into plan file paths. Directories are walked
// recursively; files are returned as given.
func Find(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsPlanFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsValidationError reports whether err carries plan problems.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func displayName(path string) string {
	if path == "" {
		return "plan"
	}
	return path
}
