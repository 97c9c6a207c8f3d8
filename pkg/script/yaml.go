package script

// yamlScript is the intermediate struct for parsing a YAML script file.
type yamlScript struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Commands    []string `yaml:"commands"`
}

// yamlScriptFile represents the top-level structure of a YAML script file.
type yamlScriptFile struct {
	Script yamlScript `yaml:"script"`
}
