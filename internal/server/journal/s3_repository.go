package journal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mkravets/falljournal/internal/logging"
)

// s3API is the subset of the S3 client the repository uses; a test seam.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Repository keeps the same record contract on object storage: the user's
// namespace is the key prefix users/<username>/ and each entry is one object
// <key>-entry.txt under it.
type S3Repository struct {
	client      s3API
	bucket      string
	granularity KeyGranularity
	logger      logging.Logger
}

func NewS3Repository(client s3API, bucket string, g KeyGranularity, l logging.Logger) *S3Repository {
	return &S3Repository{
		client:      client,
		bucket:      bucket,
		granularity: g,
		logger:      l.With("module", "journal_s3"),
	}
}

func (r *S3Repository) userPrefix(username string) string {
	return "users/" + username + "/"
}

func (r *S3Repository) Save(ctx context.Context, username string, entry *Entry) error {
	entry.Key = recordKey(entry.Timestamp, r.granularity)
	objectKey := r.userPrefix(username) + entry.Key + recordSuffix

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectKey),
		Body:   bytes.NewReader(encodeRecord(entry)),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", objectKey, err)
	}
	return nil
}

func (r *S3Repository) ListByUser(ctx context.Context, username string) ([]*Entry, error) {
	prefix := r.userPrefix(username)

	var objectKeys []string
	var continuationToken *string

	for {
		out, err := r.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(r.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}

		for _, obj := range out.Contents {
			if obj.Key != nil && strings.HasSuffix(*obj.Key, recordSuffix) {
				objectKeys = append(objectKeys, *obj.Key)
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuationToken = out.NextContinuationToken
	}

	sort.Sort(sort.Reverse(sort.StringSlice(objectKeys)))

	entries := make([]*Entry, 0, len(objectKeys))
	for _, objectKey := range objectKeys {
		data, err := r.getObject(ctx, objectKey)
		if err != nil {
			r.logger.Warn(ctx, "skipping unreadable entry record", "user", username, "key", objectKey, "error", err)
			continue
		}
		key := strings.TrimSuffix(path.Base(objectKey), recordSuffix)
		entries = append(entries, parseRecord(key, data))
	}

	return entries, nil
}

func (r *S3Repository) getObject(ctx context.Context, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
