package fetch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/zhengshuai-xiao/streamcount/internal"
)

// S3Source reads an object through the AWS SDK. Endpoint must carry the scheme
// (http:// or https://); leave it empty for AWS itself. Without keys the request
// is sent unsigned.
type S3Source struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Key       string
}

func (s *S3Source) String() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

func (s *S3Source) loadOptions() []func(*config.LoadOptions) error {
	region := s.Region
	if region == "" {
		region = "us-east-1" // This is often a default for S3-compatible stores
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}

	if s.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, "")))
	} else {
		opts = append(opts, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	if s.Endpoint != "" {
		endpoint := s.Endpoint
		opts = append(opts, config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				if service == s3.ServiceID {
					return aws.Endpoint{
						URL:           endpoint,
						SigningRegion: region,
					}, nil
				}
				return aws.Endpoint{}, fmt.Errorf("unknown endpoint requested")
			}),
		))
	}
	return opts
}

func (s *S3Source) Open(ctx context.Context) (*Body, error) {
	cfg, err := config.LoadDefaultConfig(ctx, s.loadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %w", internal.ErrTransport, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = s.Endpoint != ""
	})

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get object %s: %w", internal.ErrTransport, s, err)
	}

	size := int64(-1)
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}
	logger.Debugf("GetObject %s: content-length %d", s, size)
	return &Body{ReadCloser: resp.Body, Size: size}, nil
}
