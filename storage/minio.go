package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aravind-813/GigSphere/utils"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DeliveryStore keeps delivery file attachments in an S3-compatible bucket.
// Orders reference files by object key; downloads go through short-lived
// presigned URLs so the bucket itself never has to be public.
type DeliveryStore struct {
	client     *minio.Client
	bucketName string
}

// NewDeliveryStore connects to the object store and makes sure the bucket
// exists.
func NewDeliveryStore(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*DeliveryStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		utils.LogInfo("Bucket %s created", bucketName)
	}

	return &DeliveryStore{client: client, bucketName: bucketName}, nil
}

// ObjectPrefix returns the key namespace holding one order's attachments.
func ObjectPrefix(orderID uint) string {
	return fmt.Sprintf("orders/%d/", orderID)
}

// KeyBelongsToOrder reports whether the object key sits inside the order's
// namespace. Presigned URLs are only issued for keys that pass this check, so
// a party to one order cannot mint download links for another order's files.
func KeyBelongsToOrder(orderID uint, key string) bool {
	prefix := ObjectPrefix(orderID)
	return strings.HasPrefix(key, prefix) && len(key) > len(prefix)
}

// Upload stores one delivery attachment under the order's prefix and returns
// the object key the delivery references.
func (s *DeliveryStore) Upload(orderID uint, fileData []byte, originalFilename string) (string, error) {
	ctx := context.Background()

	ext := filepath.Ext(originalFilename)
	key := fmt.Sprintf("%sdelivery_%s_%d%s",
		ObjectPrefix(orderID),
		uuid.New().String()[:8],
		time.Now().Unix(),
		ext)

	contentType := contentTypeFor(ext)
	reader := bytes.NewReader(fileData)
	_, err := s.client.PutObject(ctx, s.bucketName, key, reader, int64(len(fileData)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	utils.LogInfo("Uploaded delivery file %s for order ID: %d", key, orderID)
	return key, nil
}

// DownloadURL returns a presigned URL valid for one hour.
func (s *DeliveryStore) DownloadURL(key string) (string, error) {
	ctx := context.Background()
	url, err := s.client.PresignedGetObject(ctx, s.bucketName, key, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// Exists reports whether the object key is present in the bucket.
func (s *DeliveryStore) Exists(key string) (bool, error) {
	ctx := context.Background()
	_, err := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file: %w", err)
	}
	return true, nil
}

func contentTypeFor(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".zip":
		return "application/zip"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
