// Package audit records authorization decisions as structured events.
//
// Access control answers "may this subject do this?"; the audit trail
// answers "what was asked, and what did we say?". Every decision carries its
// grant path or denial paths, which identify the exact rules that produced
// the outcome, so a recorded event is a complete explanation, not just a
// boolean.
//
// # Recording decisions
//
// Recorder wraps the engine. Handlers keep calling Can/CanAny as before;
// the recorder forwards the call and stores an event:
//
//	recorder := audit.NewRecorder(ac, audit.NewSlogStorage(logger),
//	    audit.WithActorExtractor(auth.UserIDFromContext),
//	    audit.WithRequestIDExtractor(requestid.FromContext),
//	)
//
//	perm, err := recorder.Can(ctx, "author", "article:update", rc)
//
// The recorder satisfies the middleware Enforcer interface, so wrapping the
// engine before handing it to route middleware gives every guarded route an
// audit trail for free.
//
// Recording failures are logged and never returned: an unavailable audit
// backend must not change authorization outcomes.
//
// # Storages
//
// Two storages ship with the package. SlogStorage writes events to the
// service's structured log stream. OpenSearchStorage indexes each decision
// as a document, enabling per-actor and per-resource queries over the
// trail.
//
// AsyncStorage decorates either with background batching:
//
//	storage, closeStorage := audit.NewAsyncStorage(
//	    audit.NewOpenSearchStorage(client, "acp-decisions"),
//	    audit.AsyncOptions{BatchSize: 200},
//	)
//	defer closeStorage(context.Background())
//
// Batches flush on size, on a timer, and on close, and a full buffer
// degrades to synchronous writes rather than dropping events.
package audit
