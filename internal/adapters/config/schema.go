package config

// SchemaVersion is the only scenario version the loader accepts.
const SchemaVersion = "1"

// RefPrefix marks a string value as a reference to another object.
const RefPrefix = "@"

// Scenariofile represents the structure of a scenario YAML file.
type Scenariofile struct {
	Version   string                `yaml:"version"`
	Name      string                `yaml:"name"`
	RootClass string                `yaml:"root_class"`
	Classes   map[string]*ClassDTO  `yaml:"classes"`
	Objects   map[string]*ObjectDTO `yaml:"objects"`
	Roots     []string              `yaml:"roots"`
	Paths     []string              `yaml:"paths"`
	Steps     []*StepDTO            `yaml:"steps"`
}

// ClassDTO declares the attributes of a class. Types are int, float,
// string, bool, any or the name of another class.
type ClassDTO struct {
	Attributes map[string]string `yaml:"attributes"`
}

// ObjectDTO declares one object and its initial values.
type ObjectDTO struct {
	Class  string         `yaml:"class"`
	Values map[string]any `yaml:"values"`
}

// StepDTO is one scripted operation. Exactly one operation field is set.
type StepDTO struct {
	Set        string `yaml:"set"`
	Value      any    `yaml:"value"`
	Ref        string `yaml:"ref"`
	AddRoot    string `yaml:"add_root"`
	RemoveRoot string `yaml:"remove_root"`
	AddPath    string `yaml:"add_path"`
	RemovePath string `yaml:"remove_path"`
	Get        string `yaml:"get"`
	WaitReady  bool   `yaml:"wait_ready"`
	Clear      bool   `yaml:"clear"`
}
