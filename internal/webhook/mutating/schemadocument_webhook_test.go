package mutating

import (
	"testing"

	"github.com/sneaksanddata/boxer/api/v1beta1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestDefault_SetsActiveOnCreate(t *testing.T) {
	w := &SchemaDocumentMutatingWebhook{}
	doc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `{}`, Active: false},
	}

	require.NoError(t, w.Default(t.Context(), doc))
	assert.True(t, doc.Spec.Active)
}

func TestDefault_DoesNotFightExistingUpdate(t *testing.T) {
	w := &SchemaDocumentMutatingWebhook{}
	doc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default", ResourceVersion: "123"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `{}`, Active: false},
	}

	require.NoError(t, w.Default(t.Context(), doc))
	assert.False(t, doc.Spec.Active)
}

func TestDefault_LeavesAlreadyActiveUnchanged(t *testing.T) {
	w := &SchemaDocumentMutatingWebhook{}
	doc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `{}`, Active: true},
	}

	require.NoError(t, w.Default(t.Context(), doc))
	assert.True(t, doc.Spec.Active)
}
