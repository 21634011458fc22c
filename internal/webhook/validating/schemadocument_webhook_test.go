package validating

import (
	"testing"

	"github.com/sneaksanddata/boxer/api/v1beta1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestValidateCreate_RejectsMalformedSchema(t *testing.T) {
	w := &SchemaDocumentValidatingWebhook{}
	doc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `{not json`, Active: true},
	}

	_, err := w.ValidateCreate(t.Context(), doc)
	require.Error(t, err)
	assert.True(t, apierrors.IsInvalid(err))
}

func TestValidateCreate_AcceptsValidSchema(t *testing.T) {
	w := &SchemaDocumentValidatingWebhook{}
	doc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `{"rules":[]}`, Active: true},
	}

	warnings, err := w.ValidateCreate(t.Context(), doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateUpdate_RejectsMalformedSchema(t *testing.T) {
	w := &SchemaDocumentValidatingWebhook{}
	oldDoc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `{}`, Active: true},
	}
	newDoc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `not json at all`, Active: true},
	}

	_, err := w.ValidateUpdate(t.Context(), oldDoc, newDoc)
	require.Error(t, err)
	assert.True(t, apierrors.IsInvalid(err))
}

func TestValidateDelete_IsNoOp(t *testing.T) {
	w := &SchemaDocumentValidatingWebhook{}
	doc := &v1beta1.SchemaDocument{
		ObjectMeta: metav1.ObjectMeta{Name: "test-schema", Namespace: "default"},
		Spec:       v1beta1.SchemaDocumentSpec{Schema: `not json`, Active: false},
	}

	warnings, err := w.ValidateDelete(t.Context(), doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}
