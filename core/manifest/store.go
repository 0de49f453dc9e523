package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"modpack-updater/core/diff"
	"modpack-updater/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a manifest object does not exist.
var ErrNotFound = errors.New("manifest not found")

// Loader loads a manifest by its object key.
type Loader interface {
	Load(ctx context.Context, key string) ([]diff.FileRecord, error)
}

// Store reads and writes manifests as JSON objects in a bucket.
type Store struct {
	client  storage.Client
	bucket  string
	decoder Decoder
	logger  *zap.Logger
}

// NewStore creates a manifest store. policy applies to malformed records on Load.
func NewStore(client storage.Client, bucket string, policy diff.RecordPolicy, logger *zap.Logger) *Store {
	return &Store{
		client:  client,
		bucket:  bucket,
		decoder: Decoder{Policy: policy, Logger: logger},
		logger:  logger,
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Created manifest bucket", zap.String("bucket", s.bucket))
	return nil
}

// Load fetches and decodes the manifest stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]diff.FileRecord, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrapGetError(key, err)
	}
	defer obj.Close()

	// Read fully first: minio reports a missing key on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrapGetError(key, err)
	}

	records, err := s.decoder.Decode(bytes.NewReader(data), key)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Loaded manifest", zap.String("key", key), zap.Int("records", len(records)))
	return records, nil
}

// Save encodes records and uploads them under key.
func (s *Store) Save(ctx context.Context, key string, records []diff.FileRecord) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload manifest %s: %w", key, err)
	}
	s.logger.Info("Uploaded manifest", zap.String("key", key), zap.Int("records", len(records)))
	return nil
}

// List returns the keys of all JSON manifests under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list manifests: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

func (s *Store) wrapGetError(key string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("failed to fetch manifest %s: %w", key, err)
}
