package s3

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/interviewsim/interview-api/internal/core/domain"
	"github.com/interviewsim/interview-api/internal/core/ports"
)

// Client implements ports.BlobStorage on Amazon S3. Bucket and region are
// constructor configuration; nothing here reads ambient globals.
type Client struct {
	api    *s3.Client
	bucket string
	region string
}

// New loads the default AWS configuration and returns an S3-backed blob
// storage client for the given bucket.
func New(ctx context.Context, region, bucket string) (*Client, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if region == "" {
		region = cfg.Region
	}

	return &Client{api: s3.NewFromConfig(cfg), bucket: bucket, region: region}, nil
}

// UploadFile stores the file under a random-prefixed key and returns the
// object's public URL. The content type is taken from the upload when set,
// otherwise sniffed from the first bytes.
func (c *Client) UploadFile(ctx context.Context, file domain.FileUpload) (string, error) {
	key := fmt.Sprintf("%s_%s", randomPrefix(), sanitizeName(file.Name))

	body := file.Content
	contentType := file.ContentType
	if contentType == "" {
		var sniff [512]byte
		n, err := io.ReadFull(body, sniff[:])
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return "", fmt.Errorf("read upload: %w", err)
		}
		contentType = http.DetectContentType(sniff[:n])
		body = io.MultiReader(bytes.NewReader(sniff[:n]), body)
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object bucket=%s key=%s: %w", c.bucket, key, err)
	}

	return c.objectURL(key), nil
}

// DeleteFileByURL removes the object the URL points at. URLs that do not
// belong to this bucket yield (false, nil) so cleanup loops can skip foreign
// references without failing.
func (c *Client) DeleteFileByURL(ctx context.Context, fileURL string) (bool, error) {
	key, ok := c.keyFromURL(fileURL)
	if !ok {
		return false, nil
	}

	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("s3 delete object bucket=%s key=%s: %w", c.bucket, key, err)
	}
	return true, nil
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

// keyFromURL extracts the object key from a URL previously produced by
// objectURL. Bare keys (legacy records stored without a full URL) pass
// through unchanged.
func (c *Client) keyFromURL(fileURL string) (string, bool) {
	if fileURL == "" {
		return "", false
	}
	if !strings.Contains(fileURL, "://") {
		return fileURL, true
	}

	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(parsed.Host, c.bucket+".") {
		return "", false
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", false
	}
	return key, true
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}
	// Keep only the base name; form uploads may carry client paths.
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func randomPrefix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

var _ ports.BlobStorage = (*Client)(nil)
