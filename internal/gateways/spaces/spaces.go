package spaces

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dwightbot/dwight-web/internal/gateways/transcoder"
)

const opusContentType = "audio/ogg"

type Config struct {
	Key      string
	Secret   string
	Region   string
	Bucket   string
	Endpoint string
	Root     string
}

// Store mirrors transcoded sounds to an S3-compatible bucket (DigitalOcean Spaces by default).
type Store struct {
	client *s3.Client
	bucket string
	root   string
}

var _ transcoder.ArtifactStore = &Store{}

func New(ctx context.Context, cfg Config, httpClient *http.Client) (*Store, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Region)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load spaces config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
		if httpClient != nil {
			o.HTTPClient = httpClient
		}
	})

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		root:   strings.Trim(cfg.Root, "/"),
	}, nil
}

func (s *Store) objectKey(key string) string {
	if s.root == "" {
		return key
	}
	return path.Join(s.root, key)
}

// Upload copies the file at localPath to root/key.
func (s *Store) Upload(ctx context.Context, key, localPath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	objectKey := s.objectKey(key)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(opusContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	slog.Debug("Artifact mirrored",
		slog.String("type", "spaces"),
		slog.String("bucket", s.bucket),
		slog.String("key", objectKey),
	)
	return nil
}
