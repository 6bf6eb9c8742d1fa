// Package s3 loads YAML policy documents from Amazon S3 or any S3-compatible
// object store (MinIO, Cloudflare R2, DigitalOcean Spaces).
//
// A single object holds the whole policy. Teams edit it as a file, review it
// in version control, and publish it to the bucket; services pick it up on
// the next load. The object body is a policy document:
//
//	version: 1
//	roles:
//	  user:
//	    resources:
//	      article:
//	        read:
//	          - effect: grant
//	  author:
//	    inherits: [user]
//	    resources:
//	      article:
//	        update:
//	          - effect: grant
//	            condition: userIsOwner
//	            fields: ["*", "!history"]
//
// # Usage
//
//	var cfg s3.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	src, err := s3.NewSource(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ac, err := accesscontrol.NewFromSource(ctx, policy.NewSource(src, registry))
//
// For S3-compatible services set ACP_S3_ENDPOINT and usually
// ACP_S3_FORCE_PATH_STYLE=true.
//
// # Error Handling
//
// S3 failures are mapped onto sentinel errors: a missing object becomes
// [ErrObjectNotFound], a missing bucket [ErrBucketNotFound], and credential
// problems [ErrAccessDenied]. Everything else keeps the underlying error in
// the chain for errors.As inspection.
package s3
