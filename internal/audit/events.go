// Package audit implements the audit event taxonomy (C9), a structured-log
// sink, and a transparent decorator (C7) that wraps a repository's CRUD
// contract to record every mutating operation.
package audit

// ModificationResult is the outcome of a recorded upsert: either a success
// carrying the human-readable audit record of the written value, or a
// failure.
type ModificationResult struct {
	Ok     bool
	Record string
}

// Success builds a successful ModificationResult carrying record.
func Success(record string) ModificationResult {
	return ModificationResult{Ok: true, Record: record}
}

// Failure builds a failed ModificationResult.
func Failure() ModificationResult {
	return ModificationResult{Ok: false}
}

// ResourceModificationEvent is emitted once per Upsert call.
type ResourceModificationEvent struct {
	ID           string
	ResourceType string
	Result       ModificationResult
}

// ResourceDeleteEvent is emitted once per Delete call.
type ResourceDeleteEvent struct {
	ID           string
	ResourceType string
	Successful   bool
}

// TokenType distinguishes which token kind a TokenValidationEvent describes.
type TokenType string

const (
	TokenTypeInternal TokenType = "internal"
	TokenTypeExternal TokenType = "external"
)

// ValidationDecision is the outcome of validating a token: either Allow, or
// Deny carrying a reason.
type ValidationDecision struct {
	Allowed bool
	Reason  string
}

// Allow is the affirmative ValidationDecision.
func Allow() ValidationDecision { return ValidationDecision{Allowed: true} }

// Deny builds a negative ValidationDecision carrying reason.
func Deny(reason string) ValidationDecision { return ValidationDecision{Allowed: false, Reason: reason} }

// TokenValidationEvent is emitted whenever a token is validated, whichever
// way the decision goes — the sink is not told how the caller policed it.
type TokenValidationEvent struct {
	TokenID   string
	TokenType TokenType
	Result    ValidationDecision
}

// AuthorizationEvent records a policy decision: an actor attempting an
// action against a resource, and whether it was allowed.
//
// This event kind is not present in the audit-event list this package's
// contract was originally distilled from; it is reconstructed here because
// the sink contract references a record_authorization operation that
// plainly expects an event shaped like this one. It has no producer inside
// this module today — it exists so the (out-of-scope) policy evaluation
// engine has an audit path ready the day it lands.
type AuthorizationEvent struct {
	Action   string
	Actor    string
	Resource string
	Decision ValidationDecision
}
