/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// SchemaDocumentSpec defines the desired state of a SchemaDocument.
type SchemaDocumentSpec struct {
	// Schema is the policy schema fragment, serialised as a JSON string.
	// +kubebuilder:validation:Required
	Schema string `json:"schema"`

	// Active is false once the document has been soft-deleted.
	// +kubebuilder:default=true
	Active bool `json:"active"`
}

// SchemaDocument is the Schema for the schemas API.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=schema;plural=schemas,singular=schema
// +kubebuilder:printcolumn:name="Active",type=boolean,JSONPath=`.spec.active`
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"
type SchemaDocument struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec SchemaDocumentSpec `json:"spec,omitempty"`
}

// SchemaDocumentList contains a list of SchemaDocument objects.
// +kubebuilder:object:root=true
type SchemaDocumentList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SchemaDocument `json:"items"`
}

func init() {
	SchemeBuilder.Register(&SchemaDocument{}, &SchemaDocumentList{})
}

// IsDeleted reports whether this document has been soft-deleted.
func (in *SchemaDocument) IsDeleted() bool {
	return !in.Spec.Active
}

// SetDeleted marks this document as tombstoned.
func (in *SchemaDocument) SetDeleted() {
	in.Spec.Active = false
}

// ClearManagedFields strips server-side managed-field metadata before re-apply,
// so a later Apply patch does not inherit stale field ownership from a prior writer.
func (in *SchemaDocument) ClearManagedFields() {
	in.ManagedFields = nil
}

func (in *SchemaDocumentSpec) DeepCopyInto(out *SchemaDocumentSpec) {
	*out = *in
}

func (in *SchemaDocumentSpec) DeepCopy() *SchemaDocumentSpec {
	if in == nil {
		return nil
	}
	out := new(SchemaDocumentSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *SchemaDocument) DeepCopyInto(out *SchemaDocument) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
}

func (in *SchemaDocument) DeepCopy() *SchemaDocument {
	if in == nil {
		return nil
	}
	out := new(SchemaDocument)
	in.DeepCopyInto(out)
	return out
}

func (in *SchemaDocument) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *SchemaDocumentList) DeepCopyInto(out *SchemaDocumentList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]SchemaDocument, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *SchemaDocumentList) DeepCopy() *SchemaDocumentList {
	if in == nil {
		return nil
	}
	out := new(SchemaDocumentList)
	in.DeepCopyInto(out)
	return out
}

func (in *SchemaDocumentList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
