package policy

import (
	"context"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
)

// DocumentSource loads a policy document from wherever it is stored. The
// backend packages under pkg/ implement it for PostgreSQL, MongoDB and S3,
// and the Redis cache both wraps and implements it.
type DocumentSource interface {
	LoadDocument(ctx context.Context) (*Document, error)
}

// NewSource adapts a DocumentSource into an engine source by compiling each
// loaded document against the registry.
func NewSource(docs DocumentSource, reg *Registry) accesscontrol.Source {
	if docs == nil {
		panic("policy: document source cannot be nil")
	}
	if reg == nil {
		panic("policy: registry cannot be nil")
	}
	return &compiledSource{docs: docs, reg: reg}
}

type compiledSource struct {
	docs DocumentSource
	reg  *Registry
}

func (s *compiledSource) Load(ctx context.Context) (accesscontrol.Store, error) {
	doc, err := s.docs.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Compile(s.reg)
}
