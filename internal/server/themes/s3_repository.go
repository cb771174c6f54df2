package themes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mkravets/falljournal/internal/session"
)

// s3API is the subset of the S3 client the repository uses; a test seam.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Repository struct {
	client s3API
	bucket string
}

func NewS3Repository(client s3API, bucket string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket}
}

func (r *S3Repository) objectKey(username string) string {
	return "users/" + username + "/" + themeFileName
}

func (r *S3Repository) Get(ctx context.Context, username string) (session.Theme, error) {
	key := r.objectKey(username)

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return session.DefaultTheme(), nil
		}
		return session.Theme{}, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return session.Theme{}, fmt.Errorf("read %s: %w", key, err)
	}

	var theme session.Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return session.Theme{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return theme, nil
}

func (r *S3Repository) Put(ctx context.Context, username string, theme session.Theme) error {
	key := r.objectKey(username)

	data, err := json.MarshalIndent(theme, "", "  ")
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
