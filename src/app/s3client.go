package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ClientMinio interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioAssetStore keeps gallery images in an s3 bucket under
// <folder>/gallery/ and serves them through presigned GET urls.
type MinioAssetStore struct {
	bucketName string
	folder     string
	client     ClientMinio
	now        func() time.Time
}

const (
	defaultContentType = "application/octet-stream"
	presignExpiry      = time.Second * 24 * 60 * 60 * 7
)

// NewMinioAssetStore creates a new MinioAssetStore instance.
func NewMinioAssetStore(endpoint, accessKeyID, secretAccessKey, bucketName, folder string, useSSL bool) (*MinioAssetStore, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Printf("can not create minio client %v for endpoint %s", err, endpoint)
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioAssetStore{
		bucketName: bucketName,
		folder:     folder,
		client:     minioClient,
		now:        time.Now,
	}, nil
}

func (s3 *MinioAssetStore) prefix() string {
	return s3.folder + "/gallery/"
}

func (s3 *MinioAssetStore) List(excludeRef string) ([]PhotoAsset, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys := make([]string, 0)
	objectCh := s3.client.ListObjects(ctx, s3.bucketName, minio.ListObjectsOptions{
		Prefix:    s3.prefix(),
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			log.Printf("%v", object.Err)
			return nil, object.Err
		}
		if !AllowedImage(object.Key) || object.Key == excludeRef {
			continue
		}
		keys = append(keys, object.Key)
	}
	// Keys carry a millisecond prefix, so descending order is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	result := make([]PhotoAsset, 0, len(keys))
	for _, key := range keys {
		presignedURL, err := s3.presign(key)
		if err != nil {
			log.Printf("%v", err)
			return nil, err
		}
		result = append(result, PhotoAsset{Ref: key, URL: presignedURL})
	}
	return result, nil
}

func (s3 *MinioAssetStore) Put(originalName string, content io.Reader, size int64) (PhotoAsset, error) {
	if err := checkUpload(originalName, size); err != nil {
		return PhotoAsset{}, err
	}
	key := s3.prefix() + deriveKey(originalName, s3.now())
	_, err := s3.client.PutObject(context.Background(),
		s3.bucketName,
		key,
		content,
		size,
		minio.PutObjectOptions{ContentType: defaultContentType})
	if err != nil {
		return PhotoAsset{}, fmt.Errorf("can not upload %s: %w", key, err)
	}
	presignedURL, err := s3.presign(key)
	if err != nil {
		return PhotoAsset{}, err
	}
	return PhotoAsset{Ref: key, URL: presignedURL}, nil
}

// Delete removes an object; minio treats a missing key as success, which
// keeps delete idempotent.
func (s3 *MinioAssetStore) Delete(ref string) error {
	err := s3.client.RemoveObject(context.Background(), s3.bucketName, ref, minio.RemoveObjectOptions{})
	if err != nil {
		log.Printf("remove %s/%s: %v", s3.bucketName, ref, err)
		return fmt.Errorf("can not delete %s: %w", ref, err)
	}
	return nil
}

func (s3 *MinioAssetStore) URL(ref string) (string, error) {
	return s3.presign(ref)
}

func (s3 *MinioAssetStore) presign(key string) (string, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("inline; filename=\"%s\"", baseName(key)))
	presignedURL, err := s3.client.PresignedGetObject(context.Background(),
		s3.bucketName,
		key,
		presignExpiry,
		reqParams)
	if err != nil {
		return "", fmt.Errorf("can not presign %s: %w", key, err)
	}
	return presignedURL.String(), nil
}

func baseName(key string) string {
	parsed := strings.Split(key, "/")
	return parsed[len(parsed)-1]
}
