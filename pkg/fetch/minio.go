package fetch

import (
	"context"
	"fmt"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/zhengshuai-xiao/streamcount/internal"
)

// MinioSource reads an object with minio-go. Endpoint is host:port without scheme.
type MinioSource struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
	Region    string // skips the bucket location lookup when set
	Bucket    string
	Object    string
}

func (s *MinioSource) String() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Object)
}

func (s *MinioSource) Open(ctx context.Context) (*Body, error) {
	client, err := miniogo.New(s.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.Secure,
		Region: s.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: client initialization failed: %w", internal.ErrTransport, err)
	}

	obj, err := client.GetObject(ctx, s.Bucket, s.Object, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get object %s: %w", internal.ErrTransport, s, err)
	}
	// GetObject is lazy; Stat issues the request and surfaces missing objects.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, fmt.Errorf("%w: failed to stat object %s: %w", internal.ErrTransport, s, err)
	}
	logger.Debugf("GetObject %s: size %d, etag %s", s, info.Size, info.ETag)
	return &Body{ReadCloser: obj, Size: info.Size}, nil
}
