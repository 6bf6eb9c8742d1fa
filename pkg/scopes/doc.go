// Package scopes parses and assembles the colon-delimited scope paths used
// by the authorization engine.
//
// A scope path names what a request is attempting: "resource:action", or
// "resource:action:field" when access to a single field is being checked.
// The literal "*" acts as a wildcard for resource and action names.
//
// # Usage
//
//	import "github.com/aneilbaboo/accesscontrol-plus/pkg/scopes"
//
//	resource, action, field := scopes.Split("article:read:title")
//	path := scopes.Join("article", "read", "")
//
//	// Reject malformed paths at configuration time rather than at query time
//	if err := scopes.Validate(path); err != nil {
//	    return err
//	}
//
// Split never fails: missing parts come back as empty strings, and parts past
// the field are dropped. The evaluator treats empty parts as ordinary lookup
// keys, so validation is only needed where a path is accepted from
// configuration or user input.
package scopes
