// Package storage persists uploaded place images in an S3-compatible
// object store (MinIO in development).
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/localgem/localgem/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// FileStorage stores an uploaded file and returns its public URL.
type FileStorage interface {
	Save(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
}

// S3Storage implements FileStorage over an S3-compatible backend.
type S3Storage struct {
	config *sc.Config
}

func NewS3Storage(cfg *sc.Config) *S3Storage {
	return &S3Storage{config: cfg}
}

// storageKey builds a collision-free object key, keeping the original
// file extension.
func storageKey(filename string) string {
	return fmt.Sprintf("places/%v%s", uuid.New(), strings.ToLower(path.Ext(filename)))
}

func (s *S3Storage) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Save uploads the file under a fresh key and returns its URL.
func (s *S3Storage) Save(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := storageKey(filename)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        data,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("s3 put error: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.config.S3BaseEndpoint, "/"), bucket, key), nil
}
