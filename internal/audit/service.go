package audit

import "context"

// Sink is the audit-record destination. Implementations return an error
// only when the sink itself failed to record the event — never because the
// event describes a semantically negative outcome (a failed modification,
// a denied token).
type Sink interface {
	RecordResourceModification(ctx context.Context, event ResourceModificationEvent) error
	RecordResourceDeletion(ctx context.Context, event ResourceDeleteEvent) error
	RecordTokenValidation(ctx context.Context, event TokenValidationEvent) error
	RecordAuthorization(ctx context.Context, event AuthorizationEvent) error
}
