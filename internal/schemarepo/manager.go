package schemarepo

import (
	"github.com/sneaksanddata/boxer/api/v1beta1"
	"github.com/sneaksanddata/boxer/internal/kuberesource"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// GroupVersionKind is the SchemaDocument custom resource kind this package
// mirrors (C6's binding of the generic resource manager).
var GroupVersionKind = v1beta1.GroupVersion.WithKind("SchemaDocument")

// NewManager constructs a resource manager scoped to SchemaDocument objects,
// filling in the GroupVersionKind and resource type name that every
// SchemaDocument-backed manager shares.
func NewManager(cfg kuberesource.Config, restClient client.WithWatch) *kuberesource.Manager[*v1beta1.SchemaDocument] {
	cfg.GroupVersionKind = GroupVersionKind
	cfg.ResourceTypeName = ResourceTypeName
	return kuberesource.New[*v1beta1.SchemaDocument](cfg, restClient,
		func() *v1beta1.SchemaDocument { return &v1beta1.SchemaDocument{} },
		func() client.ObjectList { return &v1beta1.SchemaDocumentList{} },
	)
}
