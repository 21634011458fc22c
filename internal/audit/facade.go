package audit

import (
	"context"
	"fmt"
)

// Repository is the CRUD-with-soft-delete contract the facade decorates.
// *repository.Repository[K, V, R] satisfies this shape for any (K, V, R);
// the facade only needs the key and value types, not the resource type.
type Repository[K any, V any] interface {
	Get(key K) (V, error)
	Exists(key K) (bool, error)
	Upsert(ctx context.Context, key K, value V) (V, error)
	Delete(ctx context.Context, key K) error
}

// Recorder renders a key or value as a human-readable audit record. The
// default recorders below cover the two key shapes the spec names; callers
// with a richer value type supply their own.
type Recorder[T any] func(T) string

// StringRecorder is the default Recorder for a plain string key or value:
// the record is the string itself.
func StringRecorder(x string) string { return x }

// PairRecorder is the default Recorder for a two-part (name, id) key.
func PairRecorder(x [2]string) string { return fmt.Sprintf("Schema: %s, id: %s", x[0], x[1]) }

// Facade is a transparent decorator implementing the same CRUD contract as
// the repository it wraps: every Get/Exists call forwards verbatim with no
// audit event, and every Upsert/Delete call forwards and then emits exactly
// one audit event reflecting the outcome.
type Facade[K any, V any] struct {
	inner        Repository[K, V]
	sink         Sink
	resourceType string
	recordKey    Recorder[K]
	recordValue  Recorder[V]
}

// NewFacade wraps inner with audit recording via sink. resourceType is the
// stable type name attached to every emitted event; recordKey/recordValue
// render the key/value as the human-readable strings carried in the event.
func NewFacade[K any, V any](inner Repository[K, V], sink Sink, resourceType string, recordKey Recorder[K], recordValue Recorder[V]) *Facade[K, V] {
	return &Facade[K, V]{
		inner:        inner,
		sink:         sink,
		resourceType: resourceType,
		recordKey:    recordKey,
		recordValue:  recordValue,
	}
}

// Get forwards to the wrapped repository. No audit event is emitted.
func (f *Facade[K, V]) Get(key K) (V, error) {
	return f.inner.Get(key)
}

// Exists forwards to the wrapped repository. No audit event is emitted.
func (f *Facade[K, V]) Exists(key K) (bool, error) {
	return f.inner.Exists(key)
}

// Upsert forwards to the wrapped repository, then emits exactly one
// ResourceModificationEvent. A sink failure overrides a repository success:
// the operation is acknowledged as written, but the caller is told the
// audit trail failed so it can retry or escalate.
func (f *Facade[K, V]) Upsert(ctx context.Context, key K, value V) (V, error) {
	result, opErr := f.inner.Upsert(ctx, key, value)

	event := ResourceModificationEvent{
		ID:           f.recordKey(key),
		ResourceType: f.resourceType,
	}
	if opErr == nil {
		event.Result = Success(f.recordValue(result))
	} else {
		event.Result = Failure()
	}

	if sinkErr := f.sink.RecordResourceModification(ctx, event); sinkErr != nil && opErr == nil {
		var zero V
		return zero, fmt.Errorf("upsert succeeded but audit sink failed: %w", sinkErr)
	}
	return result, opErr
}

// Delete forwards to the wrapped repository, then emits exactly one
// ResourceDeleteEvent, with the same sink-failure-overrides-success rule as
// Upsert.
func (f *Facade[K, V]) Delete(ctx context.Context, key K) error {
	opErr := f.inner.Delete(ctx, key)

	event := ResourceDeleteEvent{
		ID:           f.recordKey(key),
		ResourceType: f.resourceType,
		Successful:   opErr == nil,
	}

	if sinkErr := f.sink.RecordResourceDeletion(ctx, event); sinkErr != nil && opErr == nil {
		return fmt.Errorf("delete succeeded but audit sink failed: %w", sinkErr)
	}
	return opErr
}
