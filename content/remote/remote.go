// Package remote syncs a content bundle published to an S3-compatible
// bucket down into a local cache directory, so it can be scanned like
// any other content.Manager search directory. The core resolution
// pipeline (C3-C5) never distinguishes a locally authored content
// directory from one synced down this way.
package remote

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mwantia/contentvfs/log"
)

// Bundle mirrors a bucket+prefix of remote objects into a local cache
// directory.
type Bundle struct {
	mu sync.Mutex

	client     *minio.Client
	bucketName string
	prefix     string
	cacheDir   string

	log *log.Logger
}

// NewBundle constructs a Bundle connecting to endpoint with static
// credentials. useSSL controls whether the connection is made over
// HTTPS.
func NewBundle(endpoint, bucketName, prefix, accessKey, secretKey string, useSSL bool, cacheDir string, logger *log.Logger) (*Bundle, error) {
	if logger == nil {
		logger = log.NewLogger("content/remote", log.Warn, "", false)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &Bundle{
		client:     client,
		bucketName: bucketName,
		prefix:     prefix,
		cacheDir:   cacheDir,
		log:        logger,
	}, nil
}

// Sync downloads every object under the configured bucket/prefix into
// the local cache directory, overwriting what's there, and returns the
// cache directory path so the caller can hand it to
// content.Manager.AddSearchDir.
func (b *Bundle) Sync(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(b.cacheDir, 0o755); err != nil {
		return "", err
	}

	exists, err := b.client.BucketExists(ctx, b.bucketName)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", os.ErrNotExist
	}

	objectsCh := b.client.ListObjects(ctx, b.bucketName, minio.ListObjectsOptions{
		Prefix:    b.prefix,
		Recursive: true,
	})

	for object := range objectsCh {
		if object.Err != nil {
			return "", object.Err
		}
		if strings.HasSuffix(object.Key, "/") {
			continue
		}

		if err := b.syncObject(ctx, object.Key); err != nil {
			b.log.Error("failed to sync remote object %s: %v", object.Key, err)
			return "", err
		}
	}

	return b.cacheDir, nil
}

func (b *Bundle) syncObject(ctx context.Context, key string) error {
	relative := strings.TrimPrefix(key, b.prefix)
	relative = strings.TrimPrefix(relative, "/")
	dest := filepath.Join(b.cacheDir, filepath.FromSlash(relative))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	object, err := b.client.GetObject(ctx, b.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer object.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, object)
	return err
}
