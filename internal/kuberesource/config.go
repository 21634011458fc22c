package kuberesource

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/sneaksanddata/boxer/internal/ownermark"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// KubeconfigSource resolves a *rest.Config for the cluster the resource
// manager should talk to. Three strategies are supported, mirroring the
// ways a workload is typically handed cluster credentials: running inside
// the cluster, a kubeconfig file on disk, or a command that prints a
// kubeconfig document to stdout (e.g. a cloud CLI's credential plugin).
type KubeconfigSource interface {
	Load() (*rest.Config, error)
}

// InClusterSource loads credentials from the pod's mounted service account,
// via rest.InClusterConfig.
type InClusterSource struct{}

// Load implements KubeconfigSource.
func (InClusterSource) Load() (*rest.Config, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("loading in-cluster config: %w", err)
	}
	return cfg, nil
}

// FileSource loads a kubeconfig document from a path on disk.
type FileSource struct {
	Path string
}

// Load implements KubeconfigSource.
func (s FileSource) Load() (*rest.Config, error) {
	cfg, err := clientcmd.BuildConfigFromFlags("", s.Path)
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig from %q: %w", s.Path, err)
	}
	return cfg, nil
}

// CommandSource runs an external command and parses the kubeconfig document
// it writes to stdout, for environments that mint short-lived credentials
// via an exec plugin rather than a static file.
type CommandSource struct {
	Command string
	Args    []string
}

// Load implements KubeconfigSource.
func (s CommandSource) Load() (*rest.Config, error) {
	cmd := exec.Command(s.Command, s.Args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running kubeconfig command %q: %w", s.Command, err)
	}

	raw, err := clientcmd.Load(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parsing kubeconfig produced by %q: %w", s.Command, err)
	}

	cfg, err := clientcmd.NewDefaultClientConfig(*raw, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("building client config from %q output: %w", s.Command, err)
	}
	return cfg, nil
}

// Config wires the resource manager to a concrete cluster, namespace,
// resource kind, and owner mark.
type Config struct {
	// KubeconfigSource resolves how to reach the apiserver.
	KubeconfigSource KubeconfigSource
	// Namespace scopes both the watch and every write.
	Namespace string
	// OwnerMark fences ownership of objects this instance writes, and scopes
	// the watch's label selector.
	OwnerMark ownermark.OwnerMark
	// GroupVersionKind is the custom resource kind this manager mirrors.
	GroupVersionKind schema.GroupVersionKind
	// ResourceTypeName is the human-readable type name used in Status and
	// audit records (e.g. "SchemaDocument").
	ResourceTypeName string
}
