// Package mongodb stores access control policies in MongoDB, one document
// per role, and loads them as policy documents.
//
// The package emphasizes operational reliability through environment-based
// configuration, retry logic, and connection pooling defaults that work
// without manual tuning.
//
// Key features:
//   - Environment-driven configuration (ACP_MONGO_* variables)
//   - Built-in retry logic handles transient connection failures gracefully
//   - Health check integration for Kubernetes/Docker orchestration
//   - Error types compatible with errors.Is() for clean error handling
//
// # Collection Shape
//
// Each document in the role collection declares one role. The _id is the
// role name; rule arrays are kept in evaluation order:
//
//	{
//	  "_id": "author",
//	  "inherits": ["user"],
//	  "resources": {
//	    "article": {
//	      "update": [
//	        {"effect": "grant", "condition": "userIsOwner", "fields": ["*", "!history"]}
//	      ]
//	    }
//	  }
//	}
//
// # Usage
//
//	var cfg mongodb.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	coll, err := mongodb.NewCollection(context.Background(), cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	src := policy.NewSource(mongodb.NewSource(coll), registry)
//	ac, err := accesscontrol.NewFromSource(context.Background(), src)
//
// # Error Handling
//
// Connection failures are wrapped in domain-specific errors to enable proper
// error handling in application code. Use errors.Is() to check for specific
// failure scenarios and implement appropriate retry or fallback logic.
package mongodb
