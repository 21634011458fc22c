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

package mutating

import (
	"context"

	"github.com/sneaksanddata/boxer/api/v1beta1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

var log = logf.Log.WithName("schemadocument-mutating-webhook")

// SchemaDocumentMutatingWebhook implements the mutating webhook for
// SchemaDocuments: it defaults spec.active to true on create, since a
// hand-written manifest that omits it would otherwise admit as a tombstone
// (the Kubernetes default for an unset bool is false).
type SchemaDocumentMutatingWebhook struct{}

// +kubebuilder:webhook:path=/mutate-auth-sneaksanddata-com-v1beta1-schemadocument,mutating=true,failurePolicy=fail,sideEffects=None,groups=auth.sneaksanddata.com,resources=schemas,verbs=create,versions=v1beta1,name=mschemadocument.auth.sneaksanddata.com,admissionReviewVersions={v1},clientConfig={service:{name=webhook-service,namespace=system},caBundle=Cg==}

func (w *SchemaDocumentMutatingWebhook) SetupWebhookWithManager(mgr ctrl.Manager) error {
	return ctrl.NewWebhookManagedBy(mgr).
		For(&v1beta1.SchemaDocument{}).
		WithDefaulter(w).
		Complete()
}

// Default implements the default mutation logic. It only fires on create —
// the repository layer is the sole writer of spec.active afterwards (the
// soft-delete toggle), so a defaulter running on update would fight it.
func (w *SchemaDocumentMutatingWebhook) Default(ctx context.Context, obj runtime.Object) error {
	doc, ok := obj.(*v1beta1.SchemaDocument)
	if !ok {
		return nil
	}

	if doc.ResourceVersion == "" && !doc.Spec.Active {
		log.V(1).Info("defaulting active to true", "name", doc.Name, "namespace", doc.Namespace)
		doc.Spec.Active = true
	}

	return nil
}
