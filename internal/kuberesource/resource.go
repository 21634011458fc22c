package kuberesource

import (
	"fmt"
	"strings"

	"sigs.k8s.io/controller-runtime/pkg/client"
)

// SoftDeletable is the tombstone capability a stored resource must expose.
// The resource manager never deletes objects; deletion is modelled by a
// caller flipping this flag and re-applying.
type SoftDeletable interface {
	// IsDeleted reads the tombstone flag.
	IsDeleted() bool
	// SetDeleted marks the object as tombstoned.
	SetDeleted()
	// ClearManagedFields strips server-side managed-field metadata before
	// re-apply, so the next Apply patch doesn't inherit a prior writer's
	// field ownership.
	ClearManagedFields()
}

// ResourceObject is the capability constraint the resource manager and
// repository require of the custom resource type R: a Kubernetes object that
// is also soft-deletable.
type ResourceObject interface {
	client.Object
	SoftDeletable
}

// ObjectRef identifies a resource by name within a namespace, the unit the
// resource manager and repository operate on.
type ObjectRef struct {
	Namespace string
	Name      string
}

// String renders the reference as "namespace/name", used as the cache key.
func (r ObjectRef) String() string {
	return fmt.Sprintf("%s/%s", r.Namespace, r.Name)
}

// SanitizeName converts an arbitrary string into a DNS-subdomain-safe
// resource name: lowercase, any character outside [a-z0-9-] replaced with
// '-', leading/trailing '-' trimmed.
func SanitizeName(s string) string {
	lower := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
