package domain

// StepKind identifies the operation performed by a scenario step.
type StepKind uint8

const (
	// StepSet assigns a value or an object reference to an attribute.
	StepSet StepKind = iota
	// StepAddRoot registers an object as a root.
	StepAddRoot
	// StepRemoveRoot unregisters a root.
	StepRemoveRoot
	// StepAddPath registers a path listener.
	StepAddPath
	// StepRemovePath unregisters a path listener.
	StepRemovePath
	// StepGet reads a value through the cache.
	StepGet
	// StepWaitReady blocks until every root is ready.
	StepWaitReady
	// StepClear removes every root.
	StepClear
)

// String returns the schema name of the step kind.
func (k StepKind) String() string {
	switch k {
	case StepSet:
		return "set"
	case StepAddRoot:
		return "add_root"
	case StepRemoveRoot:
		return "remove_root"
	case StepAddPath:
		return "add_path"
	case StepRemovePath:
		return "remove_path"
	case StepGet:
		return "get"
	case StepWaitReady:
		return "wait_ready"
	case StepClear:
		return "clear"
	default:
		return "unknown"
	}
}

// ObjectSpec declares one object of a scenario.
type ObjectSpec struct {
	ID     string
	Class  string
	Values map[string]any
	// Refs maps attribute names to the IDs of the objects they reference.
	Refs map[string]string
}

// Step is one operation of a scenario.
type Step struct {
	Kind      StepKind
	Object    string
	Attribute string
	Value     any
	Ref       string
	Path      Path
}

// Scenario is a declarative object graph plus a script of operations on it.
type Scenario struct {
	Name      string
	Classes   map[string]*Class
	RootClass *Class
	Objects   []ObjectSpec
	Roots     []string
	Paths     []Path
	Steps     []Step
}
