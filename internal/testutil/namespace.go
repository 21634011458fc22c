// Package testutil implements the test harness (C10): namespace
// provisioning and wait-for-create/delete helpers shared by this module's
// resource-manager and repository tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// defaultPollInterval and defaultTimeout bound the Eventually-style waits
// below, matching the repository/manager tests' own polling cadence.
const (
	defaultPollInterval = 10 * time.Millisecond
	defaultTimeout      = time.Second
)

// NewNamespaceName returns a unique, DNS-label-safe namespace name for a
// test run: prefix plus a short correlation suffix, so parallel test cases
// against the same fake or live cluster never collide.
func NewNamespaceName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// ProvisionNamespace creates a Namespace object named by NewNamespaceName
// against cl and registers a t.Cleanup that deletes it, returning the name.
// Safe to call against both a live cluster and controller-runtime's fake
// client — a fake client namespace is bookkeeping only, but keeping the
// same call shape lets a test switch backends without touching its body.
func ProvisionNamespace(t *testing.T, ctx context.Context, cl client.Client, prefix string) string {
	t.Helper()

	name := NewNamespaceName(prefix)
	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
	if err := cl.Create(ctx, ns); err != nil && !errors.IsAlreadyExists(err) {
		t.Fatalf("provisioning test namespace %q: %v", name, err)
	}

	t.Cleanup(func() {
		_ = cl.Delete(context.Background(), ns)
	})
	return name
}

// WaitForCreation polls check until it reports the object exists (true, nil)
// or the default timeout elapses, failing the test on timeout. check should
// return (false, nil) while the object is absent, (true, nil) once present,
// and a non-nil error for anything else.
func WaitForCreation(t *testing.T, check func() (bool, error)) {
	t.Helper()
	waitFor(t, "creation", check)
}

// WaitForDeletion polls check until it reports the object is gone (true,
// nil) or the default timeout elapses, failing the test on timeout.
func WaitForDeletion(t *testing.T, check func() (bool, error)) {
	t.Helper()
	waitFor(t, "deletion", check)
}

func waitFor(t *testing.T, what string, check func() (bool, error)) {
	t.Helper()
	deadline := time.Now().Add(defaultTimeout)
	var lastErr error
	for time.Now().Before(deadline) {
		ok, err := check()
		if err != nil {
			lastErr = err
		} else if ok {
			return
		}
		time.Sleep(defaultPollInterval)
	}
	if lastErr != nil {
		t.Fatalf("timed out waiting for %s: %v", what, lastErr)
	}
	t.Fatalf("timed out waiting for %s", what)
}
