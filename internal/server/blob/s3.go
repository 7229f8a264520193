// Package blob stores property images in an S3-compatible backend. The
// store accepts a fixed set of image extensions and returns an opaque
// object key; callers persist the key as-is.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/dmarchuk/estatedesk/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// AllowedFile reports whether the file name carries an accepted image
// extension.
func AllowedFile(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

type ImageStore struct {
	config *sc.Config
}

func NewImageStore(config *sc.Config) *ImageStore {
	return &ImageStore{config: config}
}

func (s *ImageStore) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func storageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("properties/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// Store uploads the image and returns its object key. Absent data or a
// disallowed extension is a no-op returning an empty key, not an error:
// listings without an image are legal.
func (s *ImageStore) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	if len(data) == 0 || !AllowedFile(originalName) {
		return "", nil
	}

	client, err := s.getClient()
	if err != nil {
		return "", err
	}

	key := storageKey(strings.ToLower(filepath.Ext(originalName)))

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}
