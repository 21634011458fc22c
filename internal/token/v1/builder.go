package v1

import (
	"encoding/json"
	"fmt"
	"time"
)

// Builder assembles a Token field by field, failing Build with
// "<field> is required" if a required field was never set.
//
// The token's "external identity" field has historically appeared under two
// names across callers of this builder (user_id, external_identity);
// external_identity is treated as canonical (see WithUserID), per the
// decision to prefer the newer name everywhere but the builder's entry
// point, which both names reach.
type Builder struct {
	principal         *Entity
	schema            json.RawMessage
	userID            string
	identityProvider  string
	schemaName        string
	validityPeriod    time.Duration
	validatorSchemaID string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithPrincipal sets the required principal field.
func (b *Builder) WithPrincipal(principal Entity) *Builder {
	b.principal = &principal
	return b
}

// WithSchema sets the required schema field (a JSON-encoded policy schema
// fragment).
func (b *Builder) WithSchema(schema json.RawMessage) *Builder {
	b.schema = schema
	return b
}

// WithUserID sets the required external-identity field. Accepts the
// external_identity value under its legacy user_id name.
func (b *Builder) WithUserID(userID string) *Builder {
	b.userID = userID
	return b
}

// WithIdentityProvider sets the required identity-provider field.
func (b *Builder) WithIdentityProvider(identityProvider string) *Builder {
	b.identityProvider = identityProvider
	return b
}

// WithSchemaName sets the required schema name, which becomes the token's
// schema_id claim.
func (b *Builder) WithSchemaName(schemaName string) *Builder {
	b.schemaName = schemaName
	return b
}

// WithValidityPeriod sets the required validity period. Must be > 0.
func (b *Builder) WithValidityPeriod(validityPeriod time.Duration) *Builder {
	b.validityPeriod = validityPeriod
	return b
}

// WithValidatorSchemaID sets the required validator-schema-id field.
func (b *Builder) WithValidatorSchemaID(validatorSchemaID string) *Builder {
	b.validatorSchemaID = validatorSchemaID
	return b
}

// Build validates that every required field was set and returns the
// assembled Token. Version always defaults to "v1".
func (b *Builder) Build() (Token, error) {
	switch {
	case b.principal == nil:
		return Token{}, fmt.Errorf("principal is required")
	case b.schema == nil:
		return Token{}, fmt.Errorf("schema is required")
	case b.userID == "":
		return Token{}, fmt.Errorf("user_id is required")
	case b.identityProvider == "":
		return Token{}, fmt.Errorf("identity_provider is required")
	case b.schemaName == "":
		return Token{}, fmt.Errorf("schema_name is required")
	case b.validityPeriod <= 0:
		return Token{}, fmt.Errorf("validity_period is required")
	case b.validatorSchemaID == "":
		return Token{}, fmt.Errorf("validator_schema_id is required")
	}

	return Token{
		Principal:         *b.principal,
		Schema:            b.schema,
		SchemaID:          b.schemaName,
		ValidatorSchemaID: b.validatorSchemaID,
		Version:           Version,
		ValidityPeriod:    b.validityPeriod,
		Metadata: Metadata{
			ExternalIdentity: b.userID,
			IdentityProvider: b.identityProvider,
		},
	}, nil
}
