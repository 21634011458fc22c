// Package ownermark provides the label-pair identity a resource manager uses
// to fence ownership of the objects it writes and to scope its watch.
package ownermark

import "fmt"

// OwnerMark is an immutable (label key, label value) pair identifying this
// service instance as owner of the objects it writes. It is constructed once
// at process start and never mutated.
type OwnerMark struct {
	key   string
	value string
}

// New constructs an OwnerMark from a label key and value.
func New(key, value string) OwnerMark {
	return OwnerMark{key: key, value: value}
}

// Key returns the label key.
func (m OwnerMark) Key() string { return m.key }

// Value returns the label value.
func (m OwnerMark) Value() string { return m.value }

// IsOwned reports whether labels carries this owner mark's key/value pair.
func (m OwnerMark) IsOwned(labels map[string]string) bool {
	return labels[m.key] == m.value
}

// GetResourceOwner returns the label value under this mark's key, and
// whether it was present at all. An object with no such label returns
// ("", false); an object owned by a different instance returns its value.
func (m OwnerMark) GetResourceOwner(labels map[string]string) (string, bool) {
	v, ok := labels[m.key]
	return v, ok
}

// AsWatchSelector renders the "{key}={value}" label selector used to scope
// the resource manager's watch to objects this instance owns.
func (m OwnerMark) AsWatchSelector() string {
	return fmt.Sprintf("%s=%s", m.key, m.value)
}

// AsLabelPatch returns the single-entry label map merged into every object
// this instance writes.
func (m OwnerMark) AsLabelPatch() map[string]string {
	return map[string]string{m.key: m.value}
}
