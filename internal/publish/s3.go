package publish

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Client is the slice of the S3 API the publisher needs.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads the finished cache artifact so a front-end can serve
// it without the builder host in the path.
type S3Publisher struct {
	client S3Client
	bucket string
	key    string
}

func NewS3Publisher(client S3Client, bucket, key string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// NewFromConfig builds a publisher on the default AWS config chain.
func NewFromConfig(ctx context.Context, bucket, key string) (*S3Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewS3Publisher(s3.NewFromConfig(cfg), bucket, key), nil
}

// Publish uploads the artifact body. A publisher without a bucket is a
// no-op, which keeps the local-only path free of AWS setup.
func (p *S3Publisher) Publish(ctx context.Context, body []byte) error {
	if p == nil || p.bucket == "" {
		return nil
	}

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/javascript"),
	})
	if err != nil {
		return fmt.Errorf("uploading cache artifact to s3://%s/%s: %w", p.bucket, p.key, err)
	}

	log.Info().Str("bucket", p.bucket).Str("key", p.key).Int("bytes", len(body)).Msg("cache artifact published")
	return nil
}
