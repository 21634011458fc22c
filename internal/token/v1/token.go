package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BoxerClaims is the jwt.Claims implementation carrying this package's
// private claims alongside the registered issuer/audience/expiry claims.
// Signing BoxerClaims into a compact JWS is the signing collaborator's job;
// this package only shapes the claims.
type BoxerClaims struct {
	jwt.RegisteredClaims
	APIVersion        string          `json:"boxer.sneaksanddata.com/api-version"`
	Principal         json.RawMessage `json:"boxer.sneaksanddata.com/principal"`
	Schema            json.RawMessage `json:"boxer.sneaksanddata.com/schema"`
	SchemaID          string          `json:"boxer.sneaksanddata.com/schema-id"`
	ValidatorSchemaID string          `json:"boxer.sneaksanddata.com/validator-schema-id"`
	ExternalIdentity  string          `json:"boxer.sneaksanddata.com/external-identity"`
	IdentityProvider  string          `json:"boxer.sneaksanddata.com/identity-provider"`
}

// Encode populates the private claim keys, sets issuer/audience to
// Issuer/Audience, and sets expiry to now+ValidityPeriod. The returned token
// is unsigned; the caller signs it with whatever method and key its
// deployment uses (method lets the same Token be signed RS256, ES256, etc.
// without this package taking a position).
func (t Token) Encode(now time.Time, method jwt.SigningMethod) (*jwt.Token, error) {
	principalJSON, err := json.Marshal(t.Principal)
	if err != nil {
		return nil, fmt.Errorf("marshalling principal: %w", err)
	}

	claims := BoxerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ValidityPeriod)),
		},
		APIVersion:        Version,
		Principal:         principalJSON,
		Schema:            t.Schema,
		SchemaID:          t.SchemaID,
		ValidatorSchemaID: t.ValidatorSchemaID,
		ExternalIdentity:  t.Metadata.ExternalIdentity,
		IdentityProvider:  t.Metadata.IdentityProvider,
	}

	return jwt.NewWithClaims(method, claims), nil
}

// ClaimsReader is a map-like claims accessor, decoupling Decode from any
// particular JWT library's in-memory claims representation — a parsed
// jwt.MapClaims satisfies it directly via MapClaimsReader.
type ClaimsReader interface {
	Get(key string) (any, bool)
}

// MapClaimsReader adapts a jwt.MapClaims (the shape jwt.ParseWithClaims
// produces for an unverified or already-verified token) to ClaimsReader.
type MapClaimsReader jwt.MapClaims

// Get implements ClaimsReader.
func (m MapClaimsReader) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// DecodedClaims is the result of decoding an incoming claims collection: the
// schema fragment, the principal, and the two schema identifiers the policy
// pipeline correlates against.
type DecodedClaims struct {
	Schema            json.RawMessage
	Principal         Entity
	SchemaID          string
	ValidatorSchemaID string
}

// Decode reads schema, principal, schema_id, and validator_schema_id out of
// claims. A missing key fails with "Missing <field>"; a malformed value
// fails with "Invalid <field>: <cause>".
func Decode(claims ClaimsReader) (DecodedClaims, error) {
	var decoded DecodedClaims

	schemaRaw, ok := claims.Get(ClaimSchema)
	if !ok {
		return DecodedClaims{}, fmt.Errorf("Missing schema")
	}
	schemaJSON, err := toJSONRawMessage(schemaRaw)
	if err != nil {
		return DecodedClaims{}, fmt.Errorf("Invalid schema: %w", err)
	}
	decoded.Schema = schemaJSON

	principalRaw, ok := claims.Get(ClaimPrincipal)
	if !ok {
		return DecodedClaims{}, fmt.Errorf("Missing principal")
	}
	principalJSON, err := toJSONRawMessage(principalRaw)
	if err != nil {
		return DecodedClaims{}, fmt.Errorf("Invalid principal: %w", err)
	}
	if err := json.Unmarshal(principalJSON, &decoded.Principal); err != nil {
		return DecodedClaims{}, fmt.Errorf("Invalid principal: %w", err)
	}

	schemaID, ok := claims.Get(ClaimSchemaID)
	if !ok {
		return DecodedClaims{}, fmt.Errorf("Missing schema_id")
	}
	schemaIDStr, ok := schemaID.(string)
	if !ok {
		return DecodedClaims{}, fmt.Errorf("Invalid schema_id: not a string")
	}
	decoded.SchemaID = schemaIDStr

	validatorSchemaID, ok := claims.Get(ClaimValidatorSchemaID)
	if !ok {
		return DecodedClaims{}, fmt.Errorf("Missing validator_schema_id")
	}
	validatorSchemaIDStr, ok := validatorSchemaID.(string)
	if !ok {
		return DecodedClaims{}, fmt.Errorf("Invalid validator_schema_id: not a string")
	}
	decoded.ValidatorSchemaID = validatorSchemaIDStr

	return decoded, nil
}

// toJSONRawMessage normalizes a claim value, which may already be a
// json.RawMessage/[]byte/string (round-tripped through this package's own
// Encode) or a generic map/slice (parsed fresh off the wire by
// encoding/json), into a json.RawMessage.
func toJSONRawMessage(v any) (json.RawMessage, error) {
	switch val := v.(type) {
	case json.RawMessage:
		return val, nil
	case []byte:
		return val, nil
	case string:
		return json.RawMessage(val), nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}
