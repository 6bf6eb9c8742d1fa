package s3

type Config struct {
	Bucket         string `env:"ACP_S3_BUCKET,required"`                              // Bucket is the bucket holding the policy object.
	Key            string `env:"ACP_S3_KEY" envDefault:"policies/accesscontrol.yaml"` // Key is the policy object key.
	Region         string `env:"ACP_S3_REGION" envDefault:"us-east-1"`                // Region is the AWS region of the bucket.
	AccessKeyID    string `env:"ACP_S3_ACCESS_KEY_ID"`                                // AccessKeyID enables static credentials when set together with SecretKey.
	SecretKey      string `env:"ACP_S3_SECRET_KEY"`                                   // SecretKey is the static credential secret.
	Endpoint       string `env:"ACP_S3_ENDPOINT"`                                     // Endpoint is optional, for S3-compatible services.
	ForcePathStyle bool   `env:"ACP_S3_FORCE_PATH_STYLE"`                             // ForcePathStyle is for S3-compatible services like MinIO.
}
