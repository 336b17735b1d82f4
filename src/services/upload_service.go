package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// ErrInvalidImage is returned when an uploaded image is not a base64 data URI.
var ErrInvalidImage = errors.New("invalid image data")

// Uploader is the opaque blob store: it takes image bytes and returns a URL.
type Uploader interface {
	Upload(ctx context.Context, dataURI string) (string, error)
	Remove(ctx context.Context, fileURL string) error
}

// UploadService stores images in a MinIO/S3 bucket under uuid object names.
type UploadService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *logrus.Entry
}

func NewUploadService(ctx context.Context, endpoint, accessKey, secretKey, bucket, publicURL string, secure bool, log *logrus.Entry) (*UploadService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &UploadService{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		log:       log,
	}, nil
}

// Upload decodes a base64 data URI ("data:image/png;base64,....") and stores
// it, returning the object's public URL.
func (s *UploadService) Upload(ctx context.Context, dataURI string) (string, error) {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	ext := "bin"
	if idx := strings.Index(contentType, "/"); idx >= 0 {
		ext = contentType[idx+1:]
	}
	objectName := fmt.Sprintf("%s.%s", uuid.New().String(), ext)

	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

// Remove deletes the object behind a URL previously returned by Upload.
// Unknown URLs are ignored.
func (s *UploadService) Remove(ctx context.Context, fileURL string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if !strings.HasPrefix(fileURL, prefix) {
		return nil
	}
	objectName := strings.TrimPrefix(fileURL, prefix)

	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

func decodeDataURI(dataURI string) (string, []byte, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, ErrInvalidImage
	}

	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 || !strings.HasSuffix(parts[0], ";base64") {
		return "", nil, ErrInvalidImage
	}

	contentType := strings.TrimSuffix(strings.TrimPrefix(parts[0], "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, ErrInvalidImage
	}

	return contentType, data, nil
}

// noopUploader rejects uploads; used when no blob store is configured.
type noopUploader struct{}

// NewDisabledUploader returns an Uploader for deployments without storage.
func NewDisabledUploader() Uploader {
	return noopUploader{}
}

func (noopUploader) Upload(ctx context.Context, dataURI string) (string, error) {
	return "", errors.New("image uploads are not configured")
}

func (noopUploader) Remove(ctx context.Context, fileURL string) error {
	return nil
}
