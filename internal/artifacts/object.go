package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectConfig configures the S3-compatible artifact store.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Validate checks the configuration.
func (c ObjectConfig) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("object store endpoint is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("object store endpoint must not include scheme: %q", c.Endpoint)
	}
	if strings.TrimSpace(c.AccessKey) == "" {
		return errors.New("object store access key is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("object store secret key is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("object store bucket is required")
	}
	return nil
}

// ObjectStore persists artifacts in an S3-compatible bucket with the same
// key layout as the filesystem store.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore creates an object-backed artifact store.
func NewObjectStore(cfg ObjectConfig) (*ObjectStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return &ObjectStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *ObjectStore) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

func (s *ObjectStore) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

// SaveStageInput writes a stage's input snapshot.
func (s *ObjectStore) SaveStageInput(ctx context.Context, runID, stage string, data json.RawMessage) error {
	return s.put(ctx, InputKey(runID, stage), data, "application/json")
}

// SaveStageOutput writes a stage's output snapshot.
func (s *ObjectStore) SaveStageOutput(ctx context.Context, runID, stage string, data json.RawMessage) error {
	return s.put(ctx, OutputKey(runID, stage), data, "application/json")
}

// LoadStageInput reads a stage's input snapshot, nil when absent.
func (s *ObjectStore) LoadStageInput(ctx context.Context, runID, stage string) (json.RawMessage, error) {
	return s.get(ctx, InputKey(runID, stage))
}

// LoadStageOutput reads a stage's output snapshot, nil when absent.
func (s *ObjectStore) LoadStageOutput(ctx context.Context, runID, stage string) (json.RawMessage, error) {
	return s.get(ctx, OutputKey(runID, stage))
}

// SaveBinary writes a binary object and returns its key.
func (s *ObjectStore) SaveBinary(ctx context.Context, runID, name string, data []byte) (string, error) {
	key := BinaryKey(runID, name)
	contentType := "application/octet-stream"
	if strings.HasSuffix(name, ".mp3") {
		contentType = "audio/mpeg"
	}
	if err := s.put(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// SaveText writes a text object and returns its key.
func (s *ObjectStore) SaveText(ctx context.Context, runID, name, text string) (string, error) {
	key := BinaryKey(runID, name)
	if err := s.put(ctx, key, []byte(text), "text/plain; charset=utf-8"); err != nil {
		return "", err
	}
	return key, nil
}

// RequestStop writes the stop sentinel.
func (s *ObjectStore) RequestStop(ctx context.Context, runID, reason string) error {
	data, err := json.Marshal(stopSentinel{Reason: reason})
	if err != nil {
		return err
	}
	return s.put(ctx, stopKey(runID), data, "application/json")
}

// StopRequested reads the stop sentinel.
func (s *ObjectStore) StopRequested(ctx context.Context, runID string) (bool, string, error) {
	data, err := s.get(ctx, stopKey(runID))
	if err != nil || data == nil {
		return false, "", err
	}
	var sentinel stopSentinel
	if err := json.Unmarshal(data, &sentinel); err != nil {
		return true, "", nil
	}
	return true, sentinel.Reason, nil
}
