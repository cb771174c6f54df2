package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mkravets/falljournal/internal/logging"
	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/themes"
	"github.com/mkravets/falljournal/internal/server/users"
)

// S3RepositoryManager serves the same store contract from an S3-compatible
// bucket (MinIO in development): users.json is one object and every entry is
// one object under the users/<name>/ prefix.
type S3RepositoryManager struct {
	users   users.Repository
	entries journal.Repository
	themes  themes.Repository
}

func NewS3RepositoryManager(ctx context.Context, cfg *config.Config, logger logging.Logger) (*S3RepositoryManager, error) {

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config error: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
	})

	granularity := journal.ParseKeyGranularity(cfg.KeyGranularity)

	return &S3RepositoryManager{
		users:   users.NewS3Repository(client, cfg.S3Bucket),
		entries: journal.NewS3Repository(client, cfg.S3Bucket, granularity, logger),
		themes:  themes.NewS3Repository(client, cfg.S3Bucket),
	}, nil
}

func (m *S3RepositoryManager) Users() users.Repository     { return m.users }
func (m *S3RepositoryManager) Entries() journal.Repository { return m.entries }
func (m *S3RepositoryManager) Themes() themes.Repository   { return m.themes }
func (m *S3RepositoryManager) Close() error                { return nil }
