package cv

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client the store uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store stores each session's CV as the object
// <prefix><session>/cvGeneratorData.json.
//
// Example usage:
//
//	client, err := cv.NewS3Client(ctx, "eu-west-1", "")
//	store := cv.NewS3Store(client, "my-bucket", "cv/")
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates a store over an existing client.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Client builds a client from the SDK's default configuration chain
// (environment, shared config and credentials files, SSO, web identity,
// instance metadata) for region. A non-empty endpoint selects an
// S3-compatible service and path-style addressing. optFns are applied
// after the region.
func NewS3Client(ctx context.Context, region, endpoint string, optFns ...func(*awsconfig.LoadOptions) error) (*s3.Client, error) {
	opts := append([]func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}, optFns...)
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3Store) key(session string) string {
	return s.prefix + session + "/" + StorageKey + ".json"
}

// Load implements Store.
func (s *S3Store) Load(ctx context.Context, session string) (CV, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(session)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return CV{}, notFound()
		}
		return CV{}, unavailable("s3", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return CV{}, unavailable("s3", err)
	}
	return Unmarshal(data)
}

// Save implements Store.
func (s *S3Store) Save(ctx context.Context, session string, c CV) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(session)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"session":    session,
			"saved-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return unavailable("s3", err)
	}
	return nil
}

// Delete implements Store.
func (s *S3Store) Delete(ctx context.Context, session string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(session)),
	})
	if err != nil {
		return unavailable("s3", err)
	}
	return nil
}

// Backend implements Store.
func (s *S3Store) Backend() string { return "s3" }
