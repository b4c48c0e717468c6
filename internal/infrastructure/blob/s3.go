package blob

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
)

// S3Config carries the bucket settings for the recording store.
type S3Config struct {
	Bucket string
	Region string
	// Endpoint is set for S3-compatible stores (MinIO, LocalStack);
	// empty means AWS proper.
	Endpoint string
	// PublicBaseURL is the prefix recordings are served from.
	PublicBaseURL string
}

// S3Store writes recording audio to an S3 bucket.
type S3Store struct {
	client *s3.Client
	cfg    S3Config
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	opts := s3.Options{
		Region:      awsCfg.Region,
		Credentials: awsCfg.Credentials,
		HTTPClient:  awsCfg.HTTPClient,
	}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		opts.BaseEndpoint = &endpoint
		opts.UsePathStyle = true
	}

	logrus.Infof("Recording store using S3 bucket %s", cfg.Bucket)

	return &S3Store{client: s3.New(opts), cfg: cfg}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.Bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *S3Store) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.cfg.PublicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
