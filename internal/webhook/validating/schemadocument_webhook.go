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

package validating

import (
	"context"
	"encoding/json"

	"github.com/sneaksanddata/boxer/api/v1beta1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/validation/field"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"
)

var log = logf.Log.WithName("schemadocument-validating-webhook")

// SchemaDocumentValidatingWebhook rejects a SchemaDocument whose spec.schema
// is not syntactically valid JSON — the repository layer stores it opaquely
// (see schemarepo.FromResource) and only discovers a malformed document on
// read, which this webhook catches at admission time instead.
type SchemaDocumentValidatingWebhook struct{}

// +kubebuilder:webhook:path=/validate-auth-sneaksanddata-com-v1beta1-schemadocument,mutating=false,failurePolicy=fail,sideEffects=None,groups=auth.sneaksanddata.com,resources=schemas,verbs=create;update,versions=v1beta1,name=vschemadocument.auth.sneaksanddata.com,admissionReviewVersions={v1},clientConfig={service:{name=webhook-service,namespace=system},caBundle=Cg==}

func (w *SchemaDocumentValidatingWebhook) SetupWebhookWithManager(mgr ctrl.Manager) error {
	return ctrl.NewWebhookManagedBy(mgr).
		For(&v1beta1.SchemaDocument{}).
		WithValidator(w).
		Complete()
}

// ValidateCreate implements the create validation logic.
func (w *SchemaDocumentValidatingWebhook) ValidateCreate(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	doc, ok := obj.(*v1beta1.SchemaDocument)
	if !ok {
		return nil, nil
	}
	log.V(1).Info("validating webhook (create) called", "name", doc.Name, "namespace", doc.Namespace)
	return w.validateSchemaDocument(doc)
}

// ValidateUpdate implements the update validation logic.
func (w *SchemaDocumentValidatingWebhook) ValidateUpdate(ctx context.Context, oldObj runtime.Object, newObj runtime.Object) (admission.Warnings, error) {
	doc, ok := newObj.(*v1beta1.SchemaDocument)
	if !ok {
		return nil, nil
	}
	log.V(1).Info("validating webhook (update) called", "name", doc.Name, "namespace", doc.Namespace)
	return w.validateSchemaDocument(doc)
}

// ValidateDelete is a no-op: soft-deletion is modelled as an update that
// flips spec.active, not a true API delete, so there is nothing to validate
// on the rare true delete (e.g. namespace teardown).
func (w *SchemaDocumentValidatingWebhook) ValidateDelete(ctx context.Context, obj runtime.Object) (admission.Warnings, error) {
	return nil, nil
}

func (w *SchemaDocumentValidatingWebhook) validateSchemaDocument(doc *v1beta1.SchemaDocument) (admission.Warnings, error) {
	var allErrs field.ErrorList

	if !json.Valid([]byte(doc.Spec.Schema)) {
		allErrs = append(allErrs, field.Invalid(
			field.NewPath("spec").Child("schema"),
			doc.Spec.Schema,
			"schema must be syntactically valid JSON",
		))
	}

	if len(allErrs) == 0 {
		return nil, nil
	}

	return nil, apierrors.NewInvalid(
		schema.GroupKind{Group: v1beta1.GroupVersion.Group, Kind: "SchemaDocument"},
		doc.Name,
		allErrs,
	)
}
