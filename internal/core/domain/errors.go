package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyPath is returned when a path has no segments or contains an empty segment.
	ErrEmptyPath = zerr.New("path is empty or contains an empty segment")

	// ErrUnknownAttribute is returned when a path segment names an attribute the class does not declare.
	ErrUnknownAttribute = zerr.New("unknown attribute")

	// ErrNotAnObject is returned when a path continues below an attribute that does not hold an object.
	ErrNotAnObject = zerr.New("attribute does not hold an object")

	// ErrRootNotComparable is returned when a root cannot be used as an identity key.
	ErrRootNotComparable = zerr.New("root is not comparable")

	// ErrListenerNotComparable is returned when a listener cannot be compared by identity.
	ErrListenerNotComparable = zerr.New("listener is not comparable")

	// ErrNilListener is returned when a nil listener is registered.
	ErrNilListener = zerr.New("listener is nil")

	// ErrUnknownRoot is returned when an operation references a root that is not registered.
	ErrUnknownRoot = zerr.New("root is not registered")

	// ErrDisposed is returned by every cache operation after Dispose.
	ErrDisposed = zerr.New("cache is disposed")

	// ErrMissingRecord is logged when an observed object has no cache record.
	ErrMissingRecord = zerr.New("missing cache record")

	// ErrMissingUsage is logged when a cache record has no usage pair for a path node.
	ErrMissingUsage = zerr.New("missing usage pair")

	// ErrReadFailed is returned when a property cannot be read from an object.
	ErrReadFailed = zerr.New("failed to read property")

	// ErrWriteFailed is returned when a property cannot be written.
	ErrWriteFailed = zerr.New("failed to write property")

	// ErrReadOnlyAttribute is returned when writing an attribute that has no setter.
	ErrReadOnlyAttribute = zerr.New("attribute is read-only")

	// ErrUnknownClass is returned when an object has no registered class.
	ErrUnknownClass = zerr.New("unknown class")

	// ErrTypeMismatch is returned when a value does not match the attribute kind.
	ErrTypeMismatch = zerr.New("value does not match attribute type")

	// ErrScenarioReadFailed is returned when a scenario file cannot be read.
	ErrScenarioReadFailed = zerr.New("failed to read scenario")

	// ErrScenarioParseFailed is returned when a scenario file cannot be parsed.
	ErrScenarioParseFailed = zerr.New("failed to parse scenario")

	// ErrUnsupportedVersion is returned when a scenario declares an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported scenario version")

	// ErrInvalidAttributeType is returned when a class declares an attribute with an unknown type.
	ErrInvalidAttributeType = zerr.New("invalid attribute type")

	// ErrUnknownObject is returned when a scenario references an undeclared object.
	ErrUnknownObject = zerr.New("unknown object")

	// ErrInvalidStep is returned when a scenario step is malformed.
	ErrInvalidStep = zerr.New("invalid scenario step")

	// ErrWatcherFailed is returned when the scenario watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch scenario")

	// ErrMetricsServeFailed is returned when the metrics endpoint cannot listen.
	ErrMetricsServeFailed = zerr.New("failed to serve metrics")
)
