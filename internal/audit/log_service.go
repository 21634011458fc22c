package audit

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

// LogSink is the default Sink: one structured log line per event at info
// level, discriminated by log_type=audit, with the text bodies §6 specifies.
type LogSink struct {
	log logr.Logger
}

// NewLogSink wraps log as an audit Sink.
func NewLogSink(log logr.Logger) LogSink {
	return LogSink{log: log.WithValues("log_type", "audit")}
}

// RecordResourceModification implements Sink.
func (s LogSink) RecordResourceModification(_ context.Context, event ResourceModificationEvent) error {
	s.log.Info(fmt.Sprintf("Boxer resource modified: %s/%s", event.ResourceType, event.ID),
		"id", event.ID,
		"resource_type", event.ResourceType,
		"success", event.Result.Ok,
		"record", event.Result.Record,
	)
	return nil
}

// RecordResourceDeletion implements Sink.
func (s LogSink) RecordResourceDeletion(_ context.Context, event ResourceDeleteEvent) error {
	s.log.Info(fmt.Sprintf("Boxer resource deleted: %s/%s", event.ResourceType, event.ID),
		"id", event.ID,
		"resource_type", event.ResourceType,
		"successful", event.Successful,
	)
	return nil
}

// RecordTokenValidation implements Sink.
func (s LogSink) RecordTokenValidation(_ context.Context, event TokenValidationEvent) error {
	s.log.Info(fmt.Sprintf("Boxer token validation: %s/%s", event.TokenType, event.TokenID),
		"token_id", event.TokenID,
		"token_type", event.TokenType,
		"allowed", event.Result.Allowed,
		"reason", event.Result.Reason,
	)
	return nil
}

// RecordAuthorization implements Sink.
func (s LogSink) RecordAuthorization(_ context.Context, event AuthorizationEvent) error {
	s.log.Info(fmt.Sprintf("Boxer authorization decision: %s/%s", event.Action, event.Resource),
		"action", event.Action,
		"actor", event.Actor,
		"resource", event.Resource,
		"allowed", event.Decision.Allowed,
		"reason", event.Decision.Reason,
	)
	return nil
}
