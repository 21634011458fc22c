package kuberesource

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/sneaksanddata/boxer/api/v1beta1"
	"github.com/sneaksanddata/boxer/internal/ownermark"
	"github.com/sneaksanddata/boxer/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
)

func newTestScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	s := runtime.NewScheme()
	require.NoError(t, v1beta1.AddToScheme(s))
	return s
}

func newTestManager(t *testing.T, objects ...client.Object) (*Manager[*v1beta1.SchemaDocument], client.WithWatch) {
	t.Helper()
	s := newTestScheme(t)
	fakeClient := fake.NewClientBuilder().WithScheme(s).WithObjects(objects...).Build()

	mark := ownermark.New("owner", "repo-under-test")
	cfg := Config{
		Namespace:        "default",
		OwnerMark:        mark,
		ResourceTypeName: "SchemaDocument",
	}
	mgr := New[*v1beta1.SchemaDocument](cfg, fakeClient,
		func() *v1beta1.SchemaDocument { return &v1beta1.SchemaDocument{} },
		func() client.ObjectList { return &v1beta1.SchemaDocumentList{} },
	)
	return mgr, fakeClient
}

func startManager(t *testing.T, mgr *Manager[*v1beta1.SchemaDocument]) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(func() {
		mgr.Stop()
		cancel()
	})
	require.NoError(t, mgr.Start(ctx, nil, testr.New(t)))
	return ctx
}

func TestManager_GetNotFound(t *testing.T) {
	mgr, _ := newTestManager(t)
	startManager(t, mgr)

	_, err := mgr.Get(ObjectRef{Namespace: "default", Name: "test-schema"})
	assert.True(t, status.IsNotFound(err))
}

func TestManager_UpsertThenGet(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := startManager(t, mgr)

	ref := ObjectRef{Namespace: "default", Name: "test-schema"}
	desired := &v1beta1.SchemaDocument{
		TypeMeta: metav1.TypeMeta{APIVersion: "auth.sneaksanddata.com/v1beta1", Kind: "SchemaDocument"},
		Spec:     v1beta1.SchemaDocumentSpec{Schema: `{"a":1}`, Active: true},
	}

	_, err := mgr.Upsert(ctx, ref, desired)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, getErr := mgr.Get(ref)
		return getErr == nil
	}, time.Second, 10*time.Millisecond)

	got, err := mgr.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, "repo-under-test", got.GetLabels()["owner"])
	assert.Equal(t, `{"a":1}`, got.Spec.Schema)
}

func TestManager_GetUncachedForeignOwner(t *testing.T) {
	foreign := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `{}`, Active: true},
	}
	mgr, _ := newTestManager(t, foreign)
	ctx := startManager(t, mgr)

	ref := ObjectRef{Namespace: "default", Name: "test-schema"}
	_, err := mgr.GetUncached(ctx, ref)
	assert.True(t, status.IsNotOwned(err))
}
