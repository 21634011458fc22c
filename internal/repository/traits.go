// Package repository implements the generic CRUD-with-soft-delete contract
// (C5) over a (Key, Value, Resource) triple, and the conversion capabilities
// (C4) a caller's domain value and key type must satisfy to be stored this
// way.
package repository

import (
	"github.com/sneaksanddata/boxer/internal/kuberesource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ToResource is the capability a domain value V must implement to be
// convertible into a stored resource R: building a resource from the value
// plus partial metadata (the update path), and building one from scratch
// when no resource exists yet (the create path).
type ToResource[R any] interface {
	// ToResource builds a resource from the value and caller-supplied
	// metadata, e.g. metadata copied from an existing object being updated.
	ToResource(meta metav1.ObjectMeta) R
	// ToResourceDefault builds a resource when none exists yet, deriving
	// fresh metadata from the object reference.
	ToResourceDefault(ref kuberesource.ObjectRef) R
}

// FromResourceFunc parses a stored resource back into a domain value,
// failing with a conversion error. This is a function rather than a method
// on V because decoding produces a V out of thin air — there is no existing
// V instance to dispatch on.
type FromResourceFunc[V any, R any] func(resource R) (V, error)

// ObjectRefAdapter derives an object reference within a namespace from a
// caller-supplied key. Name sanitization (DNS-subdomain form) happens here.
type ObjectRefAdapter[K any] func(key K, namespace string) (kuberesource.ObjectRef, error)

// StringKeyAdapter is the default ObjectRefAdapter for a plain
// string key: the key is sanitized directly into the resource name.
func StringKeyAdapter(key string, namespace string) (kuberesource.ObjectRef, error) {
	name := kuberesource.SanitizeName(key)
	return kuberesource.ObjectRef{Namespace: namespace, Name: name}, nil
}

// PairKeyAdapter is the default ObjectRefAdapter for a two-part key
// (e.g. schema name and schema id): the parts are joined with "-" and then
// sanitized as a unit.
func PairKeyAdapter(key [2]string, namespace string) (kuberesource.ObjectRef, error) {
	name := kuberesource.SanitizeName(key[0] + "-" + key[1])
	return kuberesource.ObjectRef{Namespace: namespace, Name: name}, nil
}
