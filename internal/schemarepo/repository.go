package schemarepo

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/sneaksanddata/boxer/api/v1beta1"
	"github.com/sneaksanddata/boxer/internal/kuberesource"
	"github.com/sneaksanddata/boxer/internal/repository"
)

// Repository is a SchemaDocument-backed repository keyed by schema name.
type Repository = repository.Repository[string, SchemaFragment, *v1beta1.SchemaDocument]

// NewRepository binds the generic repository to the SchemaDocument resource
// manager, using the default string-key adapter (sanitized name) and this
// package's SchemaFragment conversion.
func NewRepository(
	manager *kuberesource.Manager[*v1beta1.SchemaDocument],
	namespace string,
	operationTimeout time.Duration,
	log logr.Logger,
) *Repository {
	return repository.New[string, SchemaFragment, *v1beta1.SchemaDocument](
		manager,
		namespace,
		operationTimeout,
		FromResource,
		repository.StringKeyAdapter,
		ResourceTypeName,
		log,
	)
}
