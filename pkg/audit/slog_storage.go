package audit

import (
	"context"
	"log/slog"
)

// SlogStorage writes decision events to a structured logger. It is the
// zero-infrastructure storage: decisions land in the service's normal log
// stream and can be shipped from there.
type SlogStorage struct {
	log *slog.Logger
}

// NewSlogStorage creates a storage logging every event at info level.
// A nil logger means slog.Default.
func NewSlogStorage(log *slog.Logger) *SlogStorage {
	if log == nil {
		log = slog.Default()
	}
	return &SlogStorage{log: log}
}

func (s *SlogStorage) Store(ctx context.Context, event Event) error {
	s.log.InfoContext(ctx, "authorization decision", eventAttrs(event)...)
	return nil
}

func (s *SlogStorage) StoreBatch(ctx context.Context, events []Event) error {
	for _, event := range events {
		if err := s.Store(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func eventAttrs(event Event) []any {
	attrs := []any{
		"id", event.ID,
		"roles", event.Roles,
		"scope", event.Scope,
		"granted", event.Granted,
	}
	if event.Actor != "" {
		attrs = append(attrs, "actor", event.Actor)
	}
	if event.RequestID != "" {
		attrs = append(attrs, "request_id", event.RequestID)
	}
	if event.GrantedPath != "" {
		attrs = append(attrs, "granted_path", event.GrantedPath)
	}
	if len(event.Denied) > 0 {
		attrs = append(attrs, "denied", event.Denied)
	}
	if event.Error != "" {
		attrs = append(attrs, "error", event.Error)
	}
	return attrs
}
