// Package v1 implements the v1 internal signed-token data model (C8): a
// builder that assembles a Token, encoding it to a signed-claims carrier and
// decoding a carrier back into boxer claims.
package v1

import (
	"encoding/json"
	"time"
)

// Private claim keys, bit-exact per the external interface this token
// format is part of. Anything reading or writing a boxer-issued token keys
// off these strings.
const (
	ClaimAPIVersion        = "boxer.sneaksanddata.com/api-version"
	ClaimPrincipal         = "boxer.sneaksanddata.com/principal"
	ClaimSchema            = "boxer.sneaksanddata.com/schema"
	ClaimSchemaID          = "boxer.sneaksanddata.com/schema-id"
	ClaimValidatorSchemaID = "boxer.sneaksanddata.com/validator-schema-id"
	ClaimExternalIdentity  = "boxer.sneaksanddata.com/external-identity"
	ClaimIdentityProvider  = "boxer.sneaksanddata.com/identity-provider"

	// Issuer and Audience are both this fixed string for every v1 token.
	Issuer   = "boxer.sneaksanddata.com"
	Audience = "boxer.sneaksanddata.com"

	// Version is the only value the "version" claim has held so far.
	Version = "v1"
)

// Entity is the principal carried by a token: its identity, attributes, and
// the chain of parent entities it inherits grants from.
type Entity struct {
	UID        string            `json:"uid"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Parents    []string          `json:"parents,omitempty"`
}

// Metadata carries identity-provider bookkeeping that travels with the
// token without itself feeding the authorization decision.
type Metadata struct {
	ExternalIdentity string `json:"external_identity"`
	IdentityProvider string `json:"identity_provider"`
}

// Token is the internal v1 token: a principal, the policy schema fragment
// it was evaluated against, and the identifiers the policy pipeline
// correlates against.
type Token struct {
	Principal         Entity
	Schema            json.RawMessage
	SchemaID          string
	ValidatorSchemaID string
	Version           string
	ValidityPeriod    time.Duration
	Metadata          Metadata
}
