package config

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage is the object store for problem statement documents. It stays nil
// when MinIO is not configured; attachment uploads then fail with a backend
// error while the rest of the API keeps working.
var Storage *ObjectStorage

type ObjectStorage struct {
	client *minio.Client
	bucket string
}

func InitStorage() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if bucket == "" {
		bucket = "ps-documents"
	}
	if endpoint == "" {
		log.Printf("Error: object storage not configured (MINIO_ENDPOINT)")
		return
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Printf("Error: failed to initialize object storage client: %v", err)
		return
	}

	Storage = &ObjectStorage{client: client, bucket: bucket}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Printf("Warning: could not check bucket %s: %v", bucket, err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Printf("Warning: could not create bucket %s: %v", bucket, err)
		}
	}
}

// Upload stores a blob at objectPath. Existing objects are never overwritten.
func (s *ObjectStorage) Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.StatObject(ctx, s.bucket, objectPath, minio.StatObjectOptions{})
	if err == nil {
		return fmt.Errorf("object already exists at %s", objectPath)
	}
	if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" {
		return err
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectPath, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Download opens the blob at objectPath for reading.
func (s *ObjectStorage) Download(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, objectPath, minio.GetObjectOptions{})
}

// Remove deletes the blob at objectPath.
func (s *ObjectStorage) Remove(ctx context.Context, objectPath string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{})
}
