package audit

import (
	"context"
	"time"
)

// Event is one recorded authorization decision.
type Event struct {
	ID          string         `json:"id"`
	Actor       string         `json:"actor,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
	Roles       []string       `json:"roles"`
	Scope       string         `json:"scope"`
	Resource    string         `json:"resource"`
	Action      string         `json:"action"`
	Field       string         `json:"field,omitempty"`
	Granted     bool           `json:"granted"`
	GrantedPath string         `json:"granted_path,omitempty"`
	Denied      []string       `json:"denied,omitempty"`
	Constraint  any            `json:"constraint,omitempty"`
	Error       string         `json:"error,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Storage persists decision events.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// BatchWriter provides efficient bulk storage for decision events.
// Implementations should optimize for batch inserts (bulk APIs, single
// round-trips). Either all events of a batch succeed or all fail.
type BatchWriter interface {
	StoreBatch(ctx context.Context, events []Event) error
}
