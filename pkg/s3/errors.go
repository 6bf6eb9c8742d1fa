package s3

import "errors"

var (
	ErrInvalidConfig      = errors.New("bucket and object key are required")
	ErrFailedToLoadConfig = errors.New("failed to load aws config")
	ErrObjectNotFound     = errors.New("policy object not found")
	ErrBucketNotFound     = errors.New("policy bucket not found")
	ErrAccessDenied       = errors.New("access denied to policy object")
	ErrFailedToLoadPolicy = errors.New("failed to read policy object")
)
