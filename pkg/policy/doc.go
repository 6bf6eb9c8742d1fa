// Package policy provides a serializable document form of access control
// policy and compiles it into a runtime store.
//
// Conditions, field generators and constraint generators are functions and
// cannot live in a YAML file or a database row. Documents therefore reference
// them by name, and a Registry supplies the implementations when the document
// is compiled. Everything else about a policy, roles, inheritance, resources,
// actions, effects, static fields and static constraint values, travels in
// the document itself.
//
// A document in YAML:
//
//	version: 1
//	roles:
//	  public:
//	    resources:
//	      "*":
//	        "*":
//	          - effect: deny
//	  author:
//	    inherits: [public]
//	    resources:
//	      article:
//	        read:
//	          - effect: grant
//	            condition: userIsOwner
//	            fields: ["*", "!history"]
//	        list:
//	          - effect: grant
//	            constraint_from: ownArticles
//
// Compiling and serving it:
//
//	reg := policy.NewRegistry()
//	if err := reg.RegisterCondition(userIsOwner); err != nil {
//	    return err
//	}
//	if err := reg.RegisterConstraint("ownArticles", ownArticles); err != nil {
//	    return err
//	}
//
//	doc, err := policy.ParseYAML(raw)
//	if err != nil {
//	    return err
//	}
//	store, err := doc.Compile(reg)
//
// The backend packages load documents from PostgreSQL, MongoDB or S3; NewSource
// pairs any of them with a registry to form an engine source:
//
//	ac, err := accesscontrol.NewFromSource(ctx, policy.NewSource(pgSource, reg))
//
// Fingerprint digests a document for cache invalidation: two documents with
// the same roles, rules and rule order share a fingerprint regardless of map
// declaration order.
package policy
