package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mkravets/falljournal/internal/common"
)

// credentialObjectKey is the single object holding the username -> hash map.
const credentialObjectKey = "users.json"

// s3API is the subset of the S3 client the repository uses; a test seam.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository keeps the whole credential map in one JSON object, mirroring
// the file backend's wholesale read-modify-write contract.
type S3Repository struct {
	client s3API
	bucket string
	mu     sync.Mutex
}

func NewS3Repository(client s3API, bucket string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket}
}

func (r *S3Repository) load(ctx context.Context) (map[string]string, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(credentialObjectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("get %s: %w", credentialObjectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", credentialObjectKey, err)
	}

	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", credentialObjectKey, err)
	}
	return m, nil
}

func (r *S3Repository) save(ctx context.Context, m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(credentialObjectKey),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", credentialObjectKey, err)
	}
	return nil
}

func (r *S3Repository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, ok := m[user.Name]; ok {
		return nil, common.ErrorAlreadyExists
	}

	m[user.Name] = user.PasswordHash
	if err := r.save(ctx, m); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *S3Repository) GetByName(ctx context.Context, name string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	hash, ok := m[name]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return &User{Name: name, PasswordHash: hash}, nil
}
