package generator

import "fmt"

// Phase tells whether a generation error was raised while walking the
// cluster-level groups or a single cache.
type Phase string

const (
	PhaseCluster Phase = "cluster"
	PhaseCache   Phase = "cache"
)

// UnknownKindError is raised when a closed-enumeration field holds a value
// not present in the descriptor tables. It aborts the whole generation
// call; no partial output is returned.
type UnknownKindError struct {
	Phase Phase
	Field string
	Value string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown kind %q for %s field %q", e.Value, e.Phase, e.Field)
}

// MalformedFieldError is raised when a descriptor-covered field holds data
// of an unexpected shape. Treated the same as an unknown kind: fatal for
// the generation call.
type MalformedFieldError struct {
	Phase  Phase
	Field  string
	Reason string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed %s field %q: %s", e.Phase, e.Field, e.Reason)
}

func unknownKind(phase Phase, field, value string) error {
	return &UnknownKindError{Phase: phase, Field: field, Value: value}
}
