package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cleanhub/config"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	MAX_IMAGE_SIZE = 10 * 1024 * 1024
	UPLOAD_TIMEOUT = 30 * time.Second
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// ObjectStore is an S3 compatible bucket.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type minioStore struct {
	client *minio.Client
	bucket string
}

func newMinioStore(ctx context.Context, config config.Config) (*minioStore, error) {
	client, err := minio.New(config.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &minioStore{client: client, bucket: config.MinioBucket}, nil
}

// Put uploads an object and returns its public URL.
func (m *minioStore) Put(
	ctx context.Context,
	key string,
	r io.Reader,
	size int64,
	contentType string,
) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	endpoint := m.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", endpoint.Scheme, endpoint.Host, m.bucket, key), nil
}

func (m *minioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

type StorageService struct {
	store ObjectStore
	log   logger.Logger
}

func NewStorageService(ctx context.Context, config config.Config) (*StorageService, error) {
	log := logger.New("storageService")

	if config.MinioEndpoint == "" {
		log.Function("NewStorageService").Warn("MINIO_ENDPOINT not set, image uploads disabled")
		return &StorageService{log: log}, nil
	}

	store, err := newMinioStore(ctx, config)
	if err != nil {
		return nil, log.Function("NewStorageService").Err("failed to connect to object storage", err)
	}

	return &StorageService{store: store, log: log}, nil
}

// DetectImageType sniffs the content and accepts only JPEG and PNG.
func DetectImageType(data []byte) (contentType string, extension string, ok bool) {
	contentType = http.DetectContentType(data)
	extension, ok = imageExtensions[contentType]
	return contentType, extension, ok
}

// DecodeDataURL decodes "data:<mime>;base64,<payload>" or a bare base64 string.
func DecodeDataURL(value string) ([]byte, error) {
	payload := strings.TrimSpace(value)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.Index(payload, ",")
		if comma < 0 || !strings.Contains(payload[:comma], ";base64") {
			return nil, fmt.Errorf("malformed data url")
		}
		payload = payload[comma+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}

// UploadPropertyImage validates and stores one image, returning its URL.
func (s *StorageService) UploadPropertyImage(
	ctx context.Context,
	propertyID uuid.UUID,
	data []byte,
) (string, error) {
	log := s.log.Function("UploadPropertyImage").TraceFromContext(ctx)

	if s.store == nil {
		return "", log.ErrorWithType(types.ErrUpstream, "Image storage is not configured.")
	}

	if len(data) == 0 {
		return "", log.ErrorWithType(types.ErrValidation, "Image is empty.")
	}

	if len(data) > MAX_IMAGE_SIZE {
		return "", log.ErrorWithType(types.ErrValidation, "Image exceeds the 10MB limit.")
	}

	contentType, extension, ok := DetectImageType(data)
	if !ok {
		return "", log.ErrorWithType(types.ErrValidation, "Only JPEG and PNG images are allowed.")
	}

	key := fmt.Sprintf("properties/%s/%s.%s", propertyID, uuid.New(), extension)

	ctx, cancel := context.WithTimeout(ctx, UPLOAD_TIMEOUT)
	defer cancel()

	url, err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.Er("failed to upload image", err, "propertyID", propertyID)
		return "", log.ErrorWithType(types.ErrUpstream, "Failed to upload image.")
	}

	return url, nil
}

// RemoveByURL deletes an object previously returned by UploadPropertyImage.
func (s *StorageService) RemoveByURL(ctx context.Context, url string) {
	if s.store == nil {
		return
	}

	index := strings.Index(url, "/properties/")
	if index < 0 {
		return
	}

	if err := s.store.Delete(ctx, url[index+1:]); err != nil {
		s.log.Function("RemoveByURL").Warn("failed to remove orphaned image", "url", url, "error", err)
	}
}
