package script

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadYAML compiles a YAML script document. Each entry of commands is
// compiled on its own, so parse errors name the entry, and the results are
// concatenated in order.
func LoadYAML(data []byte, opts ...CompileOption) (*Script, error) {
	var yamlFile yamlScriptFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Script.Commands) == 0 {
		return nil, fmt.Errorf("no commands found in YAML script")
	}

	s := &Script{
		Name:        yamlFile.Script.Name,
		Description: yamlFile.Script.Description,
	}
	for i, text := range yamlFile.Script.Commands {
		part, err := Compile(text, opts...)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		s.Append(part)
	}

	return s, nil
}

// LoadFile compiles a script file. Files ending in .yml or .yaml are parsed
// as YAML documents; anything else is plain script text, where newlines
// separate commands like ';' does.
func LoadFile(path string, opts ...CompileOption) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file %s: %w", path, err)
	}

	var s *Script
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		s, err = LoadYAML(data, opts...)
	default:
		s, err = Compile(string(data), opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}
