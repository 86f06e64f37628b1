package output

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-raytracer/pkg/core"
)

// UploadTimeout bounds a single publish call
const UploadTimeout = 10 * time.Second

// S3Config holds the connection settings for publishing renders to an S3-compatible store
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Optional, for S3-compatible services
	AccessKey string // Optional, the default credential chain is used when empty
	SecretKey string
	Prefix    string // Key prefix, e.g. "renders"
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3Publisher uploads rendered images to S3
type S3Publisher struct {
	client s3iface.S3API
	config S3Config
	logger core.Logger
}

// NewS3Publisher creates a publisher with its own AWS session
func NewS3Publisher(config S3Config, logger core.Logger) (*S3Publisher, error) {
	if !config.Enabled() {
		return nil, fmt.Errorf("no S3 bucket configured")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(config.Endpoint != ""),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return newS3Publisher(s3.New(sess), config, logger), nil
}

func newS3Publisher(client s3iface.S3API, config S3Config, logger core.Logger) *S3Publisher {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Publisher{client: client, config: config, logger: logger}
}

// Key returns the object key for a file name under the configured prefix
func (p *S3Publisher) Key(name string) string {
	return path.Join(p.config.Prefix, name)
}

// Publish uploads data under name and returns the s3:// location of the object
func (p *S3Publisher) Publish(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.Key(name)
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.config.Bucket, key)
	p.logger.Printf("Uploaded %s (%d bytes)\n", location, size)
	return location, nil
}
