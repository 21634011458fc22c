package v1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build_Succeeds(t *testing.T) {
	principal := Entity{UID: "user-1", Attributes: map[string]string{"role": "admin"}}

	tok, err := NewBuilder().
		WithPrincipal(principal).
		WithSchema(json.RawMessage(`{"rules":[]}`)).
		WithUserID("external-1").
		WithIdentityProvider("github").
		WithSchemaName("schema-a").
		WithValidityPeriod(time.Minute).
		WithValidatorSchemaID("validator-a").
		Build()

	require.NoError(t, err)
	assert.Equal(t, principal, tok.Principal)
	assert.Equal(t, "schema-a", tok.SchemaID)
	assert.Equal(t, "validator-a", tok.ValidatorSchemaID)
	assert.Equal(t, Version, tok.Version)
	assert.Equal(t, time.Minute, tok.ValidityPeriod)
	assert.Equal(t, "external-1", tok.Metadata.ExternalIdentity)
	assert.Equal(t, "github", tok.Metadata.IdentityProvider)
}

func TestBuilder_Build_MissingPrincipal(t *testing.T) {
	_, err := NewBuilder().
		WithSchema(json.RawMessage(`{}`)).
		WithUserID("external-1").
		WithIdentityProvider("github").
		WithSchemaName("schema-a").
		WithValidityPeriod(time.Minute).
		WithValidatorSchemaID("validator-a").
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "principal is required")
}

func TestBuilder_Build_MissingValidityPeriod(t *testing.T) {
	_, err := NewBuilder().
		WithPrincipal(Entity{UID: "user-1"}).
		WithSchema(json.RawMessage(`{}`)).
		WithUserID("external-1").
		WithIdentityProvider("github").
		WithSchemaName("schema-a").
		WithValidatorSchemaID("validator-a").
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validity_period is required")
}

func TestBuilder_Build_MissingValidatorSchemaID(t *testing.T) {
	_, err := NewBuilder().
		WithPrincipal(Entity{UID: "user-1"}).
		WithSchema(json.RawMessage(`{}`)).
		WithUserID("external-1").
		WithIdentityProvider("github").
		WithSchemaName("schema-a").
		WithValidityPeriod(time.Minute).
		Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator_schema_id is required")
}
