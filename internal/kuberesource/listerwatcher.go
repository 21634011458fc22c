package kuberesource

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/watch"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// listerWatcher adapts a controller-runtime client.WithWatch into the
// k8s.io/client-go/tools/cache.ListerWatcher interface the reflector-backed
// informer needs, scoping every call to one namespace and the owner mark's
// label selector. Because client.WithWatch is implemented by both a real
// cluster client and the controller-runtime fake client, the same informer
// plumbing runs unmodified against a live apiserver or a test double.
type listerWatcher struct {
	client        client.WithWatch
	namespace     string
	labelSelector labels.Selector
	newList       func() client.ObjectList
}

func (lw *listerWatcher) List(options metav1.ListOptions) (runtime.Object, error) {
	list := lw.newList()
	err := lw.client.List(context.Background(), list,
		client.InNamespace(lw.namespace),
		client.MatchingLabelsSelector{Selector: lw.labelSelector},
	)
	return list, err
}

func (lw *listerWatcher) Watch(options metav1.ListOptions) (watch.Interface, error) {
	list := lw.newList()
	return lw.client.Watch(context.Background(), list,
		client.InNamespace(lw.namespace),
		client.MatchingLabelsSelector{Selector: lw.labelSelector},
	)
}
