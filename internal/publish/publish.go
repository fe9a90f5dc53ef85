// Package publish uploads exported files to an S3-compatible bucket.
package publish

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/newstack-cloud/celerity-docs/internal/config"
	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/llmtext"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
)

// Store puts one object.
type Store interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
}

// S3Store writes objects to a bucket through minio-go.
type S3Store struct {
	client   *minio.Client
	bucket   string
	region   string
	initOnce sync.Once
	initErr  error
}

// NewS3Store creates a store for cfg. No request is made until the first Put.
func NewS3Store(cfg *config.PublishConfig) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to create s3 client").
			WithContext("endpoint", cfg.Endpoint).
			Build()
	}
	return &S3Store{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, key string, content []byte, contentType string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to prepare bucket").
			WithContext("bucket", s.bucket).
			Build()
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to upload object").
			WithContext("bucket", s.bucket).
			WithContext("key", key).
			Retryable().
			Build()
	}
	return nil
}

// Report summarizes an upload.
type Report struct {
	Objects  int
	Bytes    int64
	Duration time.Duration
}

// Upload reads each file (slash separated, relative to outDir) and stores it
// under prefix. Page texts are served as Markdown and llms.txt as plain text.
func Upload(ctx context.Context, store Store, outDir, prefix string, files []string) (*Report, error) {
	start := time.Now()
	report := &Report{}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return report, errors.WrapError(err, errors.CategoryRuntime, "publish canceled").Build()
		}
		content, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(rel)))
		if err != nil {
			return report, errors.WrapError(err, errors.CategoryFileSystem, "failed to read exported file").
				WithContext("file", rel).
				Build()
		}
		key := ObjectKey(prefix, rel)
		if err := store.Put(ctx, key, content, ContentType(rel)); err != nil {
			return report, err
		}
		report.Objects++
		report.Bytes += int64(len(content))
		slog.Debug("Published object", slog.String("key", key), logfields.File(rel))
	}
	report.Duration = time.Since(start)
	return report, nil
}

// ObjectKey joins prefix and a slash separated relative path.
func ObjectKey(prefix, rel string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

// ContentType returns the content type an exported file is served with.
func ContentType(rel string) string {
	if rel == llmtext.IndexFile {
		return "text/plain; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}
