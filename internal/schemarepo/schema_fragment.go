// Package schemarepo binds the generic repository (C5) to the concrete
// SchemaDocument custom resource (C6): group auth.sneaksanddata.com, version
// v1beta1, kind SchemaDocument, plural schemas, namespaced.
package schemarepo

import (
	"encoding/json"
	"fmt"

	"github.com/sneaksanddata/boxer/api/v1beta1"
	"github.com/sneaksanddata/boxer/internal/kuberesource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ResourceTypeName is the stable, human-readable type name this package
// registers with the repository and audit layers.
const ResourceTypeName = "SchemaDocument"

// SchemaFragment is a policy schema document — the domain value a
// SchemaDocument custom resource stores. The fragment is kept as raw JSON:
// this package only ferries it between the wire and the stored resource: it
// does not interpret schema contents, which is the policy engine's concern.
type SchemaFragment struct {
	Raw json.RawMessage
}

// ToResource builds a SchemaDocument from the fragment and caller-supplied
// metadata (the update path: meta is copied from the existing object).
func (f SchemaFragment) ToResource(meta metav1.ObjectMeta) *v1beta1.SchemaDocument {
	return &v1beta1.SchemaDocument{
		ObjectMeta: meta,
		Spec: v1beta1.SchemaDocumentSpec{
			Schema: string(f.Raw),
			Active: true,
		},
	}
}

// ToResourceDefault builds a SchemaDocument when none exists yet, deriving
// fresh metadata from the object reference (the create path).
func (f SchemaFragment) ToResourceDefault(ref kuberesource.ObjectRef) *v1beta1.SchemaDocument {
	return f.ToResource(metav1.ObjectMeta{Name: ref.Name, Namespace: ref.Namespace})
}

// FromResource parses a stored SchemaDocument back into a SchemaFragment,
// failing if the stored schema text is not valid JSON.
func FromResource(resource *v1beta1.SchemaDocument) (SchemaFragment, error) {
	raw := []byte(resource.Spec.Schema)
	if !json.Valid(raw) {
		return SchemaFragment{}, fmt.Errorf("schema document %s/%s: stored schema is not valid JSON",
			resource.Namespace, resource.Name)
	}
	return SchemaFragment{Raw: json.RawMessage(raw)}, nil
}
