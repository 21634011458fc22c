package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/sneaksanddata/boxer/internal/kuberesource"
	"github.com/sneaksanddata/boxer/internal/metrics"
	"github.com/sneaksanddata/boxer/internal/status"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// baselineSleep is the uniform spin-lock retry interval. The deadline
// invariant (operation_timeout + 2*baselineSleep) is expressed in terms of
// this constant.
const baselineSleep = 100 * time.Millisecond

// Repository is a generic CRUD-with-soft-delete layer over a resource
// manager, parametric over a caller key type K, a domain value type V, and a
// stored resource type R. V must be convertible to and from R; K must be
// convertible to an object reference within the manager's namespace.
type Repository[K any, V ToResource[R], R kuberesource.ResourceObject] struct {
	manager          *kuberesource.Manager[R]
	namespace        string
	operationTimeout time.Duration
	fromResource     FromResourceFunc[V, R]
	refAdapter       ObjectRefAdapter[K]
	resourceTypeName string
	log              logr.Logger
}

// New constructs a Repository bound to manager, with the given namespace,
// operation deadline, value-decoding function, and key-to-reference adapter.
// namespace must match the namespace the manager itself was configured
// with; object references are always derived within it.
func New[K any, V ToResource[R], R kuberesource.ResourceObject](
	manager *kuberesource.Manager[R],
	namespace string,
	operationTimeout time.Duration,
	fromResource FromResourceFunc[V, R],
	refAdapter ObjectRefAdapter[K],
	resourceTypeName string,
	log logr.Logger,
) *Repository[K, V, R] {
	return &Repository[K, V, R]{
		manager:          manager,
		namespace:        namespace,
		operationTimeout: operationTimeout,
		fromResource:     fromResource,
		refAdapter:       refAdapter,
		resourceTypeName: resourceTypeName,
		log:              log,
	}
}

func (r *Repository[K, V, R]) ref(key K) (kuberesource.ObjectRef, error) {
	ref, err := r.refAdapter(key, r.namespace)
	if err != nil {
		return kuberesource.ObjectRef{}, status.NewConversionError(err)
	}
	return ref, nil
}

// Get derives the object reference for key, reads the manager's cache, and
// converts the stored resource into a domain value. Tombstoned objects
// surface as Deleted, never as a value.
func (r *Repository[K, V, R]) Get(key K) (result V, err error) {
	defer r.observe("get", time.Now(), &err)

	var zero V
	ref, err := r.ref(key)
	if err != nil {
		return zero, err
	}

	resource, err := r.manager.Get(ref)
	if err != nil {
		return zero, err
	}
	if resource.IsDeleted() {
		return zero, status.NewDeleted(ref.Namespace, ref.Name, r.resourceTypeName)
	}

	value, convErr := r.fromResource(resource)
	if convErr != nil {
		return zero, status.NewConversionError(convErr)
	}
	return value, nil
}

// observe records the Prometheus operation-duration and error-kind metrics
// for one repository call. Called via defer with a pointer to the named
// error return so it sees the final error even when the function returns
// through multiple paths.
func (r *Repository[K, V, R]) observe(operation string, start time.Time, errPtr *error) {
	metrics.RepositoryOperationDuration.
		WithLabelValues(r.resourceTypeName, operation).
		Observe(time.Since(start).Seconds())

	if errPtr == nil || *errPtr == nil {
		return
	}
	if s, ok := (*errPtr).(*status.Status); ok {
		metrics.RepositoryOperationErrorsTotal.
			WithLabelValues(r.resourceTypeName, operation, string(s.Kind)).
			Inc()
	}
}

// Exists is a cache read that ignores tombstone state: it returns true even
// for soft-deleted objects, since they remain in the backing store.
func (r *Repository[K, V, R]) Exists(key K) (exists bool, err error) {
	defer r.observe("exists", time.Now(), &err)

	ref, err := r.ref(key)
	if err != nil {
		return false, err
	}
	_, err = r.manager.Get(ref)
	if err != nil {
		if status.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Upsert creates or updates the object identified by key to hold value,
// retrying optimistic-concurrency conflicts until operationTimeout elapses.
func (r *Repository[K, V, R]) Upsert(ctx context.Context, key K, value V) (result V, err error) {
	defer r.observe("upsert", time.Now(), &err)

	var zero V
	ref, err := r.ref(key)
	if err != nil {
		return zero, err
	}

	deadline := newDeadline(r.operationTimeout)

	for {
		existing, getErr := r.manager.Get(ref)
		switch {
		case status.IsNotFound(getErr):
			resource := value.ToResourceDefault(ref)
			_, upsertErr := r.manager.Upsert(ctx, ref, resource)
			if upsertErr == nil {
				return value, nil
			}
			if status.IsConflict(upsertErr) {
				metrics.RepositoryConflictsTotal.WithLabelValues(r.resourceTypeName, "upsert").Inc()
				if timeoutErr := deadline.sleep(ctx, "upsert", ref); timeoutErr != nil {
					return zero, timeoutErr
				}
				continue
			}
			return zero, upsertErr

		case getErr != nil:
			return zero, getErr

		case existing.IsDeleted():
			return zero, status.NewDeleted(ref.Namespace, ref.Name, r.resourceTypeName)

		default:
			// Copy metadata by hand rather than reusing existing's
			// ObjectMeta wholesale: this is what "clears managed-fields
			// before re-apply" means in practice, since a freshly built
			// ObjectMeta carries no ManagedFields entries to begin with.
			meta := metav1.ObjectMeta{
				Name:            existing.GetName(),
				Namespace:       existing.GetNamespace(),
				Labels:          existing.GetLabels(),
				Annotations:     existing.GetAnnotations(),
				ResourceVersion: existing.GetResourceVersion(),
				UID:             existing.GetUID(),
			}
			resource := value.ToResource(meta)

			_, upsertErr := r.manager.Upsert(ctx, ref, resource)
			if upsertErr == nil {
				return value, nil
			}
			if status.IsConflict(upsertErr) {
				metrics.RepositoryConflictsTotal.WithLabelValues(r.resourceTypeName, "upsert").Inc()
				if timeoutErr := deadline.sleep(ctx, "upsert", ref); timeoutErr != nil {
					return zero, timeoutErr
				}
				continue
			}
			return zero, upsertErr
		}
	}
}

// Delete tombstones the object identified by key, re-reading uncached on
// every attempt so a transient-error retry never acts on a stale ownership
// decision.
func (r *Repository[K, V, R]) Delete(ctx context.Context, key K) (err error) {
	defer r.observe("delete", time.Now(), &err)

	ref, refErr := r.ref(key)
	if refErr != nil {
		return refErr
	}

	deadline := newDeadline(r.operationTimeout)

	for {
		existing, getErr := r.manager.GetUncached(ctx, ref)
		if getErr != nil {
			// NotOwned and Other (and NotFound) from get_uncached surface
			// immediately; only the inner upsert's non-NotOwned errors are
			// retried, per the asymmetry the source models deliberately.
			return getErr
		}
		if existing.IsDeleted() {
			return status.NewDeleted(ref.Namespace, ref.Name, r.resourceTypeName)
		}

		existing.SetDeleted()
		existing.ClearManagedFields()

		_, upsertErr := r.manager.Upsert(ctx, ref, existing)
		if upsertErr == nil {
			return nil
		}
		if status.IsNotOwned(upsertErr) {
			return upsertErr
		}
		if status.IsConflict(upsertErr) {
			metrics.RepositoryConflictsTotal.WithLabelValues(r.resourceTypeName, "delete").Inc()
		}

		r.log.V(0).Info("delete: inner upsert failed, retrying",
			"name", ref.Name, "namespace", ref.Namespace, "error", upsertErr.Error())
		if timeoutErr := deadline.sleep(ctx, "delete", ref); timeoutErr != nil {
			return timeoutErr
		}
	}
}

// deadline tracks the wall-clock budget of a spin-lock loop.
type deadline struct {
	start   time.Time
	timeout time.Duration
}

func newDeadline(timeout time.Duration) *deadline {
	return &deadline{start: time.Now(), timeout: timeout}
}

// sleep checks the deadline, and if it has not yet passed, sleeps the
// baseline interval once and returns nil. If the deadline has already
// passed, it returns a Timeout status instead of sleeping — exactly one
// deadline check and at most one sleep per loop iteration, so the Conflict
// path never silently doubles the retry budget.
func (d *deadline) sleep(ctx context.Context, operation string, ref kuberesource.ObjectRef) error {
	if time.Since(d.start) > d.timeout {
		return status.NewTimeout(operation, ref.Namespace, ref.Name)
	}
	select {
	case <-ctx.Done():
		return status.NewOther(fmt.Errorf("%s on %s: %w", operation, ref.String(), ctx.Err()))
	case <-time.After(baselineSleep):
		return nil
	}
}
