package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository[string, string] double, letting the
// facade's event-emission behaviour be tested without a Kubernetes backend.
type fakeRepo struct {
	values          map[string]string
	rejectUpsertKey string
	rejectDeleteKey string
}

func newFakeRepo() *fakeRepo { return &fakeRepo{values: map[string]string{}} }

func (r *fakeRepo) Get(key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (r *fakeRepo) Exists(key string) (bool, error) {
	_, ok := r.values[key]
	return ok, nil
}

func (r *fakeRepo) Upsert(_ context.Context, key string, value string) (string, error) {
	if key == r.rejectUpsertKey {
		return "", errors.New("rejected")
	}
	r.values[key] = value
	return value, nil
}

func (r *fakeRepo) Delete(_ context.Context, key string) error {
	if key == r.rejectDeleteKey {
		return errors.New("rejected")
	}
	delete(r.values, key)
	return nil
}

// recordingSink counts calls by event kind instead of writing log lines, so
// tests can assert on audit coverage directly.
type recordingSink struct {
	modifications []ResourceModificationEvent
	deletions     []ResourceDeleteEvent
}

func (s *recordingSink) RecordResourceModification(_ context.Context, event ResourceModificationEvent) error {
	s.modifications = append(s.modifications, event)
	return nil
}

func (s *recordingSink) RecordResourceDeletion(_ context.Context, event ResourceDeleteEvent) error {
	s.deletions = append(s.deletions, event)
	return nil
}

func (s *recordingSink) RecordTokenValidation(context.Context, TokenValidationEvent) error { return nil }
func (s *recordingSink) RecordAuthorization(context.Context, AuthorizationEvent) error      { return nil }

func TestFacade_UpsertSuccess_EmitsSuccessEvent(t *testing.T) {
	repo := newFakeRepo()
	sink := &recordingSink{}
	facade := NewFacade[string, string](repo, sink, "SchemaDocument", StringRecorder, StringRecorder)

	_, err := facade.Upsert(context.Background(), "test-schema", "payload")
	require.NoError(t, err)

	require.Len(t, sink.modifications, 1)
	assert.Equal(t, "test-schema", sink.modifications[0].ID)
	assert.True(t, sink.modifications[0].Result.Ok)
	assert.Equal(t, "payload", sink.modifications[0].Result.Record)
}

func TestFacade_UpsertFailure_EmitsFailureEvent(t *testing.T) {
	repo := newFakeRepo()
	repo.rejectUpsertKey = "bad-key"
	sink := &recordingSink{}
	facade := NewFacade[string, string](repo, sink, "SchemaDocument", StringRecorder, StringRecorder)

	_, err := facade.Upsert(context.Background(), "bad-key", "payload")
	require.Error(t, err)

	require.Len(t, sink.modifications, 1)
	assert.False(t, sink.modifications[0].Result.Ok)
}

func TestFacade_DeleteSuccess_EmitsSuccessfulTrueEvent(t *testing.T) {
	repo := newFakeRepo()
	repo.values["test-schema"] = "payload"
	sink := &recordingSink{}
	facade := NewFacade[string, string](repo, sink, "SchemaDocument", StringRecorder, StringRecorder)

	require.NoError(t, facade.Delete(context.Background(), "test-schema"))

	require.Len(t, sink.deletions, 1)
	assert.True(t, sink.deletions[0].Successful)
}

func TestFacade_GetAndExists_EmitNoEvents(t *testing.T) {
	repo := newFakeRepo()
	repo.values["test-schema"] = "payload"
	sink := &recordingSink{}
	facade := NewFacade[string, string](repo, sink, "SchemaDocument", StringRecorder, StringRecorder)

	_, err := facade.Get("test-schema")
	require.NoError(t, err)
	_, err = facade.Exists("test-schema")
	require.NoError(t, err)

	assert.Empty(t, sink.modifications)
	assert.Empty(t, sink.deletions)
}

func TestFacade_SinkFailureOverridesSuccess(t *testing.T) {
	repo := newFakeRepo()
	sink := &failingSink{}
	facade := NewFacade[string, string](repo, sink, "SchemaDocument", StringRecorder, StringRecorder)

	_, err := facade.Upsert(context.Background(), "test-schema", "payload")
	require.Error(t, err)
	// the mutation itself still happened even though the facade reports failure.
	v, getErr := repo.Get("test-schema")
	require.NoError(t, getErr)
	assert.Equal(t, "payload", v)
}

type failingSink struct{}

func (failingSink) RecordResourceModification(context.Context, ResourceModificationEvent) error {
	return errors.New("sink down")
}
func (failingSink) RecordResourceDeletion(context.Context, ResourceDeleteEvent) error {
	return errors.New("sink down")
}
func (failingSink) RecordTokenValidation(context.Context, TokenValidationEvent) error { return nil }
func (failingSink) RecordAuthorization(context.Context, AuthorizationEvent) error     { return nil }

func TestPairRecorder_Format(t *testing.T) {
	assert.Equal(t, "Schema: test-schema, id: abc123", PairRecorder([2]string{"test-schema", "abc123"}))
}
