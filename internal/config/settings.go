package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sneaksanddata/boxer/internal/kuberesource"
	"github.com/sneaksanddata/boxer/internal/ownermark"
	"sigs.k8s.io/yaml"
)

// RepositorySettings is the configuration document §6 of spec.md names:
// the owner-mark label pair, the spin-lock deadline, and the namespace and
// kubeconfig source the resource manager connects with.
type RepositorySettings struct {
	LabelSelectorKey   string   `json:"labelSelectorKey" env:"BOXER_LABEL_SELECTOR_KEY"`
	LabelSelectorValue string   `json:"labelSelectorValue" env:"BOXER_LABEL_SELECTOR_VALUE"`
	OperationTimeout   Duration `json:"operationTimeout" env:"BOXER_OPERATION_TIMEOUT" envDefault:"30s"`
	Namespace          string   `json:"namespace" env:"BOXER_NAMESPACE" envDefault:"default"`

	// Exactly one of these three selects the kubeconfig source; InCluster
	// wins if true, then KubeconfigPath, then KubeconfigCommand.
	InCluster         bool   `json:"inCluster" env:"BOXER_IN_CLUSTER" envDefault:"false"`
	KubeconfigPath    string `json:"kubeconfigPath" env:"BOXER_KUBECONFIG_PATH"`
	KubeconfigCommand string `json:"kubeconfigCommand" env:"BOXER_KUBECONFIG_COMMAND"`
}

// LoadSettingsFile parses a YAML RepositorySettings document from path.
func LoadSettingsFile(path string) (*RepositorySettings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %q: %w", path, err)
	}
	settings := &RepositorySettings{}
	if err := yaml.Unmarshal(raw, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file %q: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// LoadSettingsEnv loads RepositorySettings from environment variables, for
// container deployments that prefer env vars over a mounted file.
func LoadSettingsEnv() (*RepositorySettings, error) {
	settings := &RepositorySettings{}
	if err := env.Parse(settings); err != nil {
		return nil, fmt.Errorf("parsing settings from env: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate reports a descriptive error if required fields are missing.
func (s *RepositorySettings) Validate() error {
	if s.LabelSelectorKey == "" {
		return fmt.Errorf("labelSelectorKey is required")
	}
	if s.LabelSelectorValue == "" {
		return fmt.Errorf("labelSelectorValue is required")
	}
	if s.OperationTimeout.Duration <= 0 {
		return fmt.Errorf("operationTimeout must be > 0")
	}
	return nil
}

// OwnerMark builds the ownermark.OwnerMark this settings document describes.
func (s *RepositorySettings) OwnerMark() ownermark.OwnerMark {
	return ownermark.New(s.LabelSelectorKey, s.LabelSelectorValue)
}

// KubeconfigSource resolves the kuberesource.KubeconfigSource this settings
// document describes: in-cluster takes priority, then a kubeconfig file
// path, then a command producing a kubeconfig on stdout.
func (s *RepositorySettings) KubeconfigSource() (kuberesource.KubeconfigSource, error) {
	switch {
	case s.InCluster:
		return kuberesource.InClusterSource{}, nil
	case s.KubeconfigPath != "":
		return kuberesource.FileSource{Path: s.KubeconfigPath}, nil
	case s.KubeconfigCommand != "":
		return kuberesource.CommandSource{Command: "sh", Args: []string{"-c", s.KubeconfigCommand}}, nil
	default:
		return nil, fmt.Errorf("no kubeconfig source configured: set inCluster, kubeconfigPath, or kubeconfigCommand")
	}
}
