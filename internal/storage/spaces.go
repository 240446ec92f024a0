// Package storage uploads dashboard images (event banners, reward
// thumbnails, avatars) to an S3-compatible Spaces bucket and serves
// their public URLs back to the API.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ecowave/ecowave-hub/internal/config"
)

// ErrUnsupportedType is returned for uploads that are not one of the
// accepted image content types.
var ErrUnsupportedType = fmt.Errorf("unsupported image content type")

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// SpacesService uploads and deletes objects in one bucket under a fixed
// key prefix.
type SpacesService struct {
	client *s3.Client
	bucket string
	region string
	root   string
	now    func() time.Time
}

// NewSpacesService builds the S3 client against the Spaces endpoint for
// the configured region. Returns an error instead of a client when the
// storage credentials are not configured, so the caller can run with
// uploads disabled.
func NewSpacesService(cfg config.Config) (*SpacesService, error) {
	if cfg.StorageKey == "" || cfg.StorageSecret == "" || cfg.StorageBucket == "" {
		return nil, fmt.Errorf("storage credentials not configured")
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.StorageKey, cfg.StorageSecret, "")),
		awsconfig.WithRegion(cfg.StorageRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	return &SpacesService{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.StorageBucket,
		region: cfg.StorageRegion,
		root:   strings.Trim(cfg.StorageRoot, "/"),
		now:    time.Now,
	}, nil
}

// Upload stores one image under <root>/<kind>/<unix-nano><ext> and
// returns its public URL. kind groups objects by what they illustrate
// ("events", "rewards", "avatars").
func (s *SpacesService) Upload(ctx context.Context, kind, contentType string, data []byte) (string, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	key := path.Join(s.root, kind, fmt.Sprintf("%d%s", s.now().UnixNano(), ext))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return s.PublicURL(key), nil
}

// Delete removes one object. Accepts either a bare key or a full public
// URL previously returned by Upload.
func (s *SpacesService) Delete(ctx context.Context, keyOrURL string) error {
	key := strings.TrimPrefix(keyOrURL, s.urlPrefix())
	key = strings.TrimPrefix(key, "/")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the CDN-less public URL for a stored key.
func (s *SpacesService) PublicURL(key string) string {
	return s.urlPrefix() + "/" + strings.TrimPrefix(key, "/")
}

func (s *SpacesService) urlPrefix() string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com", s.bucket, s.region)
}
