// Package s3store issues presigned PUT URLs so clients upload movie
// artwork directly to the bucket, and deletes objects when a movie is
// removed. The server never proxies media bytes.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// uploadURLTTL bounds how long a presigned PUT stays valid.
const uploadURLTTL = 10 * time.Minute

// ErrUnsupportedType rejects uploads whose primary content-type category
// is not a media kind we store.
var ErrUnsupportedType = errors.New("unsupported content type")

// Config holds the bucket settings loaded at startup.
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Store wraps one bucket with a presigner and a deleter.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	region  string
}

// New builds the S3 client from static credentials.
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
	}, nil
}

// UploadCredentials is what the client needs to PUT the object itself:
// the short-lived signed URL and the durable public URL to record after
// the upload succeeds.
type UploadCredentials struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

// AllowedContentType reports whether the primary category of a MIME type
// is one we store.
func AllowedContentType(contentType string) bool {
	category, _, _ := strings.Cut(contentType, "/")
	switch category {
	case "image", "video", "audio":
		return true
	}
	return false
}

// UploadURL presigns a PUT for the given key, valid for ten minutes.
func (s *Store) UploadURL(ctx context.Context, contentType, key string) (UploadCredentials, error) {
	if !AllowedContentType(contentType) {
		return UploadCredentials{}, ErrUnsupportedType
	}

	key = strings.Trim(strings.TrimSpace(key), `"`)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return UploadCredentials{}, fmt.Errorf("presign put: %w", err)
	}

	return UploadCredentials{
		UploadURL: req.URL,
		FileURL:   s.PublicURL(key),
	}, nil
}

// PublicURL is the durable address of an object in this bucket.
func (s *Store) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// KeyFromURL recovers the object key from a public URL.
func KeyFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse object url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("object url %q has no key", raw)
	}
	unescaped, err := url.PathUnescape(key)
	if err != nil {
		return "", fmt.Errorf("unescape object key: %w", err)
	}
	return unescaped, nil
}

// Delete removes the object behind a public URL. S3 deletes are
// idempotent: deleting an absent object succeeds.
func (s *Store) Delete(ctx context.Context, publicURL string) error {
	key, err := KeyFromURL(publicURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
