package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sneaksanddata/boxer/internal/kuberesource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFile_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	body := "labelSelectorKey: app.kubernetes.io/managed-by\n" +
		"labelSelectorValue: boxer-repo\n" +
		"operationTimeout: 45s\n" +
		"namespace: boxer\n" +
		"inCluster: true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "app.kubernetes.io/managed-by", settings.LabelSelectorKey)
	assert.Equal(t, "boxer-repo", settings.LabelSelectorValue)
	assert.Equal(t, "45s", settings.OperationTimeout.Duration.String())
	assert.Equal(t, "boxer", settings.Namespace)
	assert.True(t, settings.InCluster)
}

func TestLoadSettingsFile_MissingRequiredField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("namespace: boxer\n"), 0o600))

	_, err := LoadSettingsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labelSelectorKey")
}

func TestLoadSettingsEnv_ReadsEnvironment(t *testing.T) {
	t.Setenv("BOXER_LABEL_SELECTOR_KEY", "owner")
	t.Setenv("BOXER_LABEL_SELECTOR_VALUE", "boxer-repo-1")
	t.Setenv("BOXER_OPERATION_TIMEOUT", "10s")
	t.Setenv("BOXER_NAMESPACE", "auth")
	t.Setenv("BOXER_KUBECONFIG_PATH", "/etc/boxer/kubeconfig")

	settings, err := LoadSettingsEnv()
	require.NoError(t, err)
	assert.Equal(t, "owner", settings.LabelSelectorKey)
	assert.Equal(t, "boxer-repo-1", settings.LabelSelectorValue)
	assert.Equal(t, "10s", settings.OperationTimeout.Duration.String())
	assert.Equal(t, "auth", settings.Namespace)

	source, err := settings.KubeconfigSource()
	require.NoError(t, err)
	assert.Equal(t, kuberesource.FileSource{Path: "/etc/boxer/kubeconfig"}, source)
}

func TestRepositorySettings_OwnerMark(t *testing.T) {
	settings := &RepositorySettings{LabelSelectorKey: "owner", LabelSelectorValue: "repo-a"}
	mark := settings.OwnerMark()
	assert.Equal(t, "owner=repo-a", mark.AsWatchSelector())
}

func TestRepositorySettings_KubeconfigSource_NoneConfigured(t *testing.T) {
	settings := &RepositorySettings{}
	_, err := settings.KubeconfigSource()
	require.Error(t, err)
}
