package config

import (
	"fmt"
	"os"
	"path/filepath"

	"filemanip/transformations"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the project file read by the execute command
const DefaultPath = ".filemanip.yaml"

// DefaultOutputDirectory is used when an execution doesn't set one
const DefaultOutputDirectory = "generated"

// Contexts defines context-based filtering for an execution
type Contexts struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Output describes where an execution writes its result
type Output struct {
	Name      string `yaml:"name"`
	Directory string `yaml:"directory"`
}

// Execution is a named rewrite of one input file
type Execution struct {
	Name     string                   `yaml:"name"`
	Input    string                   `yaml:"input"`
	Commands []transformations.Config `yaml:"commands"`
	Output   Output                   `yaml:"output"`
	Contexts Contexts                 `yaml:"contexts"`
}

// File is the content of a .filemanip.yaml project file
type File struct {
	Contexts   []string    `yaml:"contexts"`
	Executions []Execution `yaml:"executions"`
}

// Load reads and validates a project file
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(file.Executions) == 0 {
		return nil, fmt.Errorf("no executions found in %s", path)
	}

	seen := make(map[string]bool)
	for _, exec := range file.Executions {
		if exec.Name == "" {
			return nil, fmt.Errorf("execution without name in %s", path)
		}
		if seen[exec.Name] {
			return nil, fmt.Errorf("duplicate execution %q in %s", exec.Name, path)
		}
		seen[exec.Name] = true
		if exec.Input == "" {
			return nil, fmt.Errorf("input is required for execution %q", exec.Name)
		}
	}

	return &file, nil
}

// Find returns the executions with the given names, in the order requested
func (f *File) Find(names []string) ([]Execution, error) {
	byName := make(map[string]Execution, len(f.Executions))
	for _, exec := range f.Executions {
		byName[exec.Name] = exec
	}

	var found []Execution
	for _, name := range names {
		exec, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("execution %q not found", name)
		}
		found = append(found, exec)
	}
	return found, nil
}

// Names returns the names of all executions
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Executions))
	for _, exec := range f.Executions {
		names = append(names, exec.Name)
	}
	return names
}

// Transformations builds the execution's command list
func (e *Execution) Transformations() ([]transformations.Transformation, error) {
	commands, err := transformations.BuildTransformations(e.Commands)
	if err != nil {
		return nil, fmt.Errorf("execution %q: %w", e.Name, err)
	}
	return commands, nil
}

// OutputPath returns the output file path, applying defaults
func (e *Execution) OutputPath() string {
	name := e.Output.Name
	if name == "" {
		name = filepath.Base(e.Input)
	}
	dir := e.Output.Directory
	if dir == "" {
		dir = DefaultOutputDirectory
	}
	return filepath.Join(dir, name)
}

// ShouldRun returns true if the execution should run for the given contexts
func (e *Execution) ShouldRun(contexts []string) bool {
	if len(contexts) == 0 {
		return true
	}

	// If include list is specified, at least one context must be in it
	if len(e.Contexts.Include) > 0 && !containsAny(e.Contexts.Include, contexts) {
		return false
	}

	// None of the contexts can be excluded
	return !containsAny(e.Contexts.Exclude, contexts)
}

func containsAny(list, values []string) bool {
	for _, v := range values {
		for _, item := range list {
			if item == v {
				return true
			}
		}
	}
	return false
}
