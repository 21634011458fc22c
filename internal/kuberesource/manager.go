// Package kuberesource implements a reflector-backed, owner-aware cache and
// patch-based upsert path over one Kubernetes custom resource kind in one
// namespace.
package kuberesource

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/sneaksanddata/boxer/internal/metrics"
	"github.com/sneaksanddata/boxer/internal/ownermark"
	"github.com/sneaksanddata/boxer/internal/status"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/tools/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Manager mirrors the set of objects matching a Config's owner mark, in one
// namespace, into an in-process cache, and exposes a patch-based upsert path
// implementing optimistic concurrency fenced by that owner mark.
//
// R is supplied by the caller as concrete factories (newObj, newList)
// because Go generics cannot construct an arbitrary type parameter's zero
// value the way a reflective language can.
type Manager[R ResourceObject] struct {
	mark             ownermark.OwnerMark
	namespace        string
	resourceTypeName string
	gvk              schema.GroupVersionKind
	log              logr.Logger

	client  client.WithWatch
	newObj  func() R
	newList func() client.ObjectList

	mu        sync.Mutex
	store     cache.Store
	stopCh    chan struct{}
	hasSynced cache.InformerSynced
}

// New constructs a Manager that has not yet started its watch. newObj and
// newList must return a fresh zero-value instance of R and of R's list type
// respectively (e.g. func() *v1beta1.SchemaDocument { return &v1beta1.SchemaDocument{} }).
func New[R ResourceObject](cfg Config, restClient client.WithWatch, newObj func() R, newList func() client.ObjectList) *Manager[R] {
	return &Manager[R]{
		mark:             cfg.OwnerMark,
		namespace:        cfg.Namespace,
		resourceTypeName: cfg.ResourceTypeName,
		gvk:              cfg.GroupVersionKind,
		client:           restClient,
		newObj:           newObj,
		newList:          newList,
	}
}

// Start creates the labelled watch, begins draining it into the in-memory
// store on a background goroutine, and blocks until the initial list has
// been applied. The update handler receives every object the watch touches,
// including ones the manager failed to process.
func (m *Manager[R]) Start(ctx context.Context, handler UpdateHandler[R], log logr.Logger) error {
	m.mu.Lock()
	if m.stopCh != nil {
		m.mu.Unlock()
		return fmt.Errorf("resource manager for %s already started", m.resourceTypeName)
	}
	m.log = log
	m.stopCh = make(chan struct{})
	stopCh := m.stopCh
	m.mu.Unlock()

	selector, err := labels.Parse(m.mark.AsWatchSelector())
	if err != nil {
		return fmt.Errorf("parsing owner-mark watch selector: %w", err)
	}

	lw := &listerWatcher{
		client:        m.client,
		namespace:     m.namespace,
		labelSelector: selector,
		newList:       m.newList,
	}

	store, controller := cache.NewInformer(lw, m.newObj(), 0, cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj interface{}) { m.deliver(obj, handler) },
		UpdateFunc: func(_, newObj interface{}) {
			m.deliver(newObj, handler)
		},
		DeleteFunc: func(obj interface{}) { m.deliver(obj, handler) },
	})

	m.mu.Lock()
	m.store = store
	m.hasSynced = controller.HasSynced
	m.mu.Unlock()

	go controller.Run(stopCh)

	if !cache.WaitForCacheSync(ctx.Done(), controller.HasSynced) {
		return fmt.Errorf("resource manager for %s: context cancelled before initial list completed", m.resourceTypeName)
	}
	return nil
}

// Stop aborts the background watch. Idempotent.
func (m *Manager[R]) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopCh == nil {
		return
	}
	select {
	case <-m.stopCh:
		// already closed
	default:
		close(m.stopCh)
	}
}

func (m *Manager[R]) deliver(obj interface{}, handler UpdateHandler[R]) {
	m.reportCacheSize()

	if handler == nil {
		return
	}
	if deleted, ok := obj.(cache.DeletedFinalStateUnknown); ok {
		obj = deleted.Obj
	}
	r, ok := obj.(R)
	if !ok {
		handler.OnUpdate(r, fmt.Errorf("resource manager for %s: watch delivered unexpected type %T", m.resourceTypeName, obj))
		return
	}
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.Error(fmt.Errorf("%v", rec), "update handler panicked")
			}
		}()
		handler.OnUpdate(r, nil)
	}()
}

// reportCacheSize publishes the current number of mirrored objects to the
// cache-size gauge after every watch-delivered change.
func (m *Manager[R]) reportCacheSize() {
	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store == nil {
		return
	}
	metrics.CacheSize.WithLabelValues(m.resourceTypeName).Set(float64(len(store.ListKeys())))
}

// Get is a strictly non-blocking cache lookup.
func (m *Manager[R]) Get(ref ObjectRef) (R, error) {
	var zero R
	m.mu.Lock()
	store := m.store
	m.mu.Unlock()
	if store == nil {
		return zero, status.NewOther(fmt.Errorf("resource manager for %s: not started", m.resourceTypeName))
	}

	obj, exists, err := store.GetByKey(ref.String())
	if err != nil {
		return zero, status.NewOther(err)
	}
	if !exists {
		return zero, status.NewNotFound(ref.Namespace, ref.Name, m.resourceTypeName)
	}
	return obj.(R), nil
}

// GetUncached bypasses the cache via a direct API read and verifies
// ownership before returning, so callers never act on a stale cache entry.
func (m *Manager[R]) GetUncached(ctx context.Context, ref ObjectRef) (R, error) {
	var zero R
	obj, err := m.rawGet(ctx, ref)
	if err != nil {
		return zero, err
	}
	if !m.mark.IsOwned(obj.GetLabels()) {
		owner, _ := m.mark.GetResourceOwner(obj.GetLabels())
		return zero, status.NewNotOwned(ref.Namespace, ref.Name, m.resourceTypeName, owner)
	}
	return obj, nil
}

// rawGet fetches the object directly from the API server without checking
// ownership, classifying only NotFound vs. Other.
func (m *Manager[R]) rawGet(ctx context.Context, ref ObjectRef) (R, error) {
	var zero R
	obj := m.newObj()
	err := m.client.Get(ctx, client.ObjectKey{Namespace: ref.Namespace, Name: ref.Name}, obj)
	if apierrors.IsNotFound(err) {
		return zero, status.NewNotFound(ref.Namespace, ref.Name, m.resourceTypeName)
	}
	if err != nil {
		return zero, status.NewOther(err)
	}
	return obj, nil
}

// Upsert merges the owner labels into desired, then issues a server-side
// Apply patch with field_manager = owner_mark.key. On a 409 it fetches the
// current object and classifies the conflict: if we own the current object,
// returns Conflict; otherwise NotOwned carrying the current owner.
func (m *Manager[R]) Upsert(ctx context.Context, ref ObjectRef, desired R) (R, error) {
	var zero R

	labelsMap := desired.GetLabels()
	if labelsMap == nil {
		labelsMap = map[string]string{}
	}
	for k, v := range m.mark.AsLabelPatch() {
		labelsMap[k] = v
	}
	desired.SetLabels(labelsMap)
	desired.SetName(ref.Name)
	desired.SetNamespace(ref.Namespace)
	if !m.gvk.Empty() {
		desired.GetObjectKind().SetGroupVersionKind(m.gvk)
	}

	err := m.client.Patch(ctx, desired, client.Apply, client.FieldOwner(m.mark.Key()))
	if err == nil {
		return desired, nil
	}
	if !apierrors.IsConflict(err) {
		return zero, status.NewOther(err)
	}

	current, getErr := m.rawGet(ctx, ref)
	if getErr != nil {
		return zero, getErr
	}
	if m.mark.IsOwned(current.GetLabels()) {
		return zero, status.NewConflict(ref.Namespace, ref.Name, m.resourceTypeName)
	}
	owner, _ := m.mark.GetResourceOwner(current.GetLabels())
	return zero, status.NewNotOwned(ref.Namespace, ref.Name, m.resourceTypeName, owner)
}
