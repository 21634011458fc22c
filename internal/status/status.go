// Package status defines the error taxonomy returned by the storage layer.
//
// A Status is either nil (success) or one of the Kind values below, carrying
// kind-specific details. Callers use errors.As to recover the concrete kind.
package status

import (
	"errors"
	"fmt"
)

// Kind enumerates the possible storage-layer failure classes.
type Kind string

const (
	// KindConflict means an optimistic write collided with a concurrent writer
	// on an object we own. Recoverable by retry.
	KindConflict Kind = "Conflict"
	// KindNotOwned means the object exists but carries a different owner label
	// (or none at all). Unrecoverable.
	KindNotOwned Kind = "NotOwned"
	// KindNotFound means no object exists in the cache for the given reference.
	KindNotFound Kind = "NotFound"
	// KindDeleted means the object exists but has been tombstoned.
	KindDeleted Kind = "Deleted"
	// KindConversionError means the value<->resource mapping failed.
	KindConversionError Kind = "ConversionError"
	// KindTimeout means the operation exceeded its deadline.
	KindTimeout Kind = "Timeout"
	// KindOther is any other backend failure.
	KindOther Kind = "Other"
)

// Status is the error type returned by the resource manager and repository
// layers. It is always non-nil when returned as an error; a successful
// operation returns a nil Status together with a nil error.
type Status struct {
	Kind Kind

	// Name, Namespace, ResourceType identify the object involved, when known.
	Name         string
	Namespace    string
	ResourceType string

	// CurrentOwner is set for NotOwned when the object carries a different
	// owner label; empty if the object carries no owner label at all.
	CurrentOwner string

	// Message carries a human-readable detail for Timeout and Other.
	Message string

	// Cause is the wrapped backend or conversion error, if any.
	Cause error
}

// Error implements the error interface.
func (s *Status) Error() string {
	switch s.Kind {
	case KindConflict:
		return fmt.Sprintf("conflict writing %s/%s (%s)", s.Namespace, s.Name, s.ResourceType)
	case KindNotOwned:
		if s.CurrentOwner == "" {
			return fmt.Sprintf("%s/%s (%s) is not owned by us", s.Namespace, s.Name, s.ResourceType)
		}
		return fmt.Sprintf("%s/%s (%s) is owned by %q", s.Namespace, s.Name, s.ResourceType, s.CurrentOwner)
	case KindNotFound:
		return fmt.Sprintf("%s/%s (%s) not found", s.Namespace, s.Name, s.ResourceType)
	case KindDeleted:
		return fmt.Sprintf("%s/%s (%s) is deleted", s.Namespace, s.Name, s.ResourceType)
	case KindConversionError:
		return fmt.Sprintf("conversion error: %v", s.Cause)
	case KindTimeout:
		return fmt.Sprintf("timeout: %s", s.Message)
	default:
		if s.Cause != nil {
			return fmt.Sprintf("%s: %v", s.Message, s.Cause)
		}
		return s.Message
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As chains.
func (s *Status) Unwrap() error {
	return s.Cause
}

// Is reports whether target is a *Status with the same Kind as s, letting
// callers match on kind alone, e.g.
// errors.Is(err, &status.Status{Kind: status.KindConflict}).
func (s *Status) Is(target error) bool {
	t, ok := target.(*Status)
	if !ok {
		return false
	}
	return s.Kind == t.Kind
}

// NewConflict builds a Conflict status for the given reference.
func NewConflict(namespace, name, resourceType string) *Status {
	return &Status{Kind: KindConflict, Namespace: namespace, Name: name, ResourceType: resourceType}
}

// NewNotOwned builds a NotOwned status. currentOwner is empty if the object
// carries no owner label.
func NewNotOwned(namespace, name, resourceType, currentOwner string) *Status {
	return &Status{Kind: KindNotOwned, Namespace: namespace, Name: name, ResourceType: resourceType, CurrentOwner: currentOwner}
}

// NewNotFound builds a NotFound status.
func NewNotFound(namespace, name, resourceType string) *Status {
	return &Status{Kind: KindNotFound, Namespace: namespace, Name: name, ResourceType: resourceType}
}

// NewDeleted builds a Deleted status.
func NewDeleted(namespace, name, resourceType string) *Status {
	return &Status{Kind: KindDeleted, Namespace: namespace, Name: name, ResourceType: resourceType}
}

// NewConversionError wraps a value<->resource conversion failure.
func NewConversionError(cause error) *Status {
	return &Status{Kind: KindConversionError, Cause: cause}
}

// NewTimeout builds a Timeout status carrying the operation name and object
// reference in its message, per the deadline invariant.
func NewTimeout(operation, namespace, name string) *Status {
	return &Status{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("operation %q on %s/%s exceeded its deadline", operation, namespace, name),
	}
}

// NewOther wraps an arbitrary backend failure.
func NewOther(cause error) *Status {
	return &Status{Kind: KindOther, Cause: cause, Message: "backend error"}
}

// IsConflict, IsNotOwned, IsNotFound, IsDeleted report the Kind of an error
// that is (or wraps) a *Status, without requiring callers to type-assert.
func IsConflict(err error) bool { return kindOf(err) == KindConflict }
func IsNotOwned(err error) bool { return kindOf(err) == KindNotOwned }
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }
func IsDeleted(err error) bool  { return kindOf(err) == KindDeleted }
func IsTimeout(err error) bool  { return kindOf(err) == KindTimeout }

func kindOf(err error) Kind {
	var s *Status
	if !errors.As(err, &s) {
		return ""
	}
	return s.Kind
}
