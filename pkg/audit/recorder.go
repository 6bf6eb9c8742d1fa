package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
	"github.com/aneilbaboo/accesscontrol-plus/pkg/scopes"
)

// Authorizer is the engine surface the recorder wraps.
// *accesscontrol.AccessControl satisfies it.
type Authorizer interface {
	Can(ctx context.Context, role string, scope string, rc accesscontrol.Context) (*accesscontrol.Permission, error)
	CanAny(ctx context.Context, roles []string, scope string, rc accesscontrol.Context) (*accesscontrol.Permission, error)
}

// extractor pulls a string value out of a request context.
type extractor func(context.Context) (string, bool)

// Recorder wraps an Authorizer and records every decision: the roles asked,
// the scope, the outcome, and the decision paths that produced it. The
// wrapped engine's answers pass through unchanged; recording failures are
// logged and never affect the authorization outcome.
type Recorder struct {
	authorizer Authorizer
	storage    Storage
	log        *slog.Logger

	actorExtractor     extractor
	requestIDExtractor extractor
	metadataExtractor  func(context.Context) map[string]any
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithActorExtractor sets how the acting subject's identifier is read from
// the request context.
func WithActorExtractor(fn func(context.Context) (string, bool)) Option {
	return func(r *Recorder) {
		r.actorExtractor = fn
	}
}

// WithRequestIDExtractor sets how the request correlation ID is read from
// the request context.
func WithRequestIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(r *Recorder) {
		r.requestIDExtractor = fn
	}
}

// WithMetadataExtractor attaches per-request metadata to every event.
func WithMetadataExtractor(fn func(context.Context) map[string]any) Option {
	return func(r *Recorder) {
		r.metadataExtractor = fn
	}
}

// WithLogger routes recording failure logs to the given logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Recorder) {
		r.log = log
	}
}

// NewRecorder creates a recorder around an engine and a storage.
func NewRecorder(authorizer Authorizer, storage Storage, opts ...Option) *Recorder {
	if authorizer == nil {
		panic("audit: authorizer cannot be nil")
	}
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	r := &Recorder{
		authorizer: authorizer,
		storage:    storage,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Can evaluates a single role and records the decision.
func (r *Recorder) Can(ctx context.Context, role string, scope string, rc accesscontrol.Context) (*accesscontrol.Permission, error) {
	perm, err := r.authorizer.Can(ctx, role, scope, rc)
	r.record(ctx, []string{role}, scope, perm, err)
	return perm, err
}

// CanAny evaluates a set of roles and records the decision.
func (r *Recorder) CanAny(ctx context.Context, roles []string, scope string, rc accesscontrol.Context) (*accesscontrol.Permission, error) {
	perm, err := r.authorizer.CanAny(ctx, roles, scope, rc)
	r.record(ctx, roles, scope, perm, err)
	return perm, err
}

func (r *Recorder) record(ctx context.Context, roles []string, scope string, perm *accesscontrol.Permission, evalErr error) {
	event := Event{
		ID:        uuid.New().String(),
		Roles:     roles,
		Scope:     scope,
		CreatedAt: time.Now(),
	}
	event.Resource, event.Action, event.Field = scopes.Split(scope)

	if r.actorExtractor != nil {
		if actor, ok := r.actorExtractor(ctx); ok {
			event.Actor = actor
		}
	}
	if r.requestIDExtractor != nil {
		if id, ok := r.requestIDExtractor(ctx); ok {
			event.RequestID = id
		}
	}
	if r.metadataExtractor != nil {
		event.Metadata = r.metadataExtractor(ctx)
	}

	switch {
	case evalErr != nil:
		event.Error = evalErr.Error()
	case perm != nil:
		event.Granted = perm.Granted()
		event.GrantedPath = perm.GrantedPath()
		event.Denied = perm.Denied()
		if constraint, ok := perm.Constraint(); ok {
			event.Constraint = constraint
		}
	}

	// Recording must not change authorization outcomes.
	if err := r.storage.Store(ctx, event); err != nil {
		r.log.ErrorContext(ctx, "failed to record authorization decision",
			"error", err,
			"scope", scope,
			"roles", roles,
		)
	}
}
