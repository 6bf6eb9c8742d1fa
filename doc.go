// Package accesscontrol provides an attribute-aware authorization decision
// engine with role inheritance, wildcard fallback, field-level masking and
// per-request constraints.
//
// Policy is a set of roles. Each role maps resources to actions, each action
// holds an ordered list of scopes, and each scope pairs a grant or deny
// effect with a condition evaluated against the request context. Roles may
// inherit from other roles; the literal "*" acts as a fallback name for
// roles, resources and actions alike.
//
// Key concepts:
//
//   - Scope path: a "resource:action" or "resource:action:field" string
//     naming what is being attempted
//   - Condition: a named predicate deciding whether a scope applies to the
//     request, for example ownership of the target record
//   - Effect: grant or deny; a matched deny short-circuits the action, even
//     against grants declared on inherited roles
//   - Fields: per-field visibility attached to a grant, with wildcard and
//     "!" negation support
//   - Constraint: a value derived from the request and returned with a
//     grant, typically a filter for the downstream data query
//   - Decision path: a diagnostic string of the form
//     effect:role:resource:action:scopeIndex:field:condition identifying
//     exactly which scope produced each decision
//
// Basic usage:
//
//	userIsOwner := accesscontrol.Condition{
//	    Name: "userIsOwner",
//	    Test: func(ctx context.Context, rc accesscontrol.Context) (bool, error) {
//	        return rc["user"] == rc["owner"], nil
//	    },
//	}
//
//	ac := accesscontrol.New()
//	ac.Deny("public").Scope("*:*")
//	ac.Grant("user").Inherits("public").
//	    Scope("article:read").
//	    Scope("article:create")
//	ac.Grant("author").Inherits("user").
//	    Scope("article:update").Where(userIsOwner).
//	    OnFields("*", "!history")
//
//	perm, err := ac.Can(ctx, "author", "article:update", accesscontrol.Context{
//	    "user":  "alice",
//	    "owner": "alice",
//	})
//	if err != nil {
//	    // Policy fault: generator failure or inheritance cycle.
//	}
//	if perm.Granted() {
//	    visible := perm.Field("title") // true
//	    hidden := perm.Field("history") // false
//	}
//
// Denied outcomes are results, not errors. A denied Permission carries the
// decision paths of every scope that rejected the request, which makes
// policy debugging a matter of reading strings like
// "grant:author:article:update:0::userIsOwner".
//
// Constraints scope the data access that follows an authorization check:
//
//	ac.Grant("author").Scope("article:list").
//	    WithConstraintGenerator("ownArticles", func(ctx context.Context, rc accesscontrol.Context) (any, error) {
//	        return map[string]any{"owner_id": rc["user"]}, nil
//	    })
//
//	perm, _ := ac.Can(ctx, "author", "article:list", rc)
//	if filter, ok := perm.Constraint(); ok {
//	    // Apply filter to the database query.
//	}
//
// Policy can also be loaded from a Source, such as the declarative document
// sources under pkg/, instead of being declared in code.
package accesscontrol
