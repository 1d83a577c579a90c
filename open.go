package tcgaexpr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const gsPrefix = "gs://"

// IsGoogleStoragePath reports whether path names a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, gsPrefix)
}

// SplitGoogleStoragePath splits gs://bucket/path/to/object into its bucket and
// object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, gsPrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// NewStorageClientFor initializes a Google Storage client only if one of the
// paths points to Google Storage. Otherwise the client is nil, which Open
// accepts for local paths.
func NewStorageClientFor(ctx context.Context, paths ...string) (*storage.Client, error) {
	for _, path := range paths {
		if IsGoogleStoragePath(path) {
			return storage.NewClient(ctx)
		}
	}

	return nil, nil
}

// Open opens a local file or a gs:// object and transparently decompresses
// it. The caller must close the result.
func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var raw io.ReadCloser

	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, pfx.Err(fmt.Errorf("%s: no Google Storage client was initialized", path))
		}

		bucketName, objectName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
		raw = rdr
	} else {
		f, err := os.Open(ExpandHome(path))
		if err != nil {
			return nil, err
		}
		raw = f
	}

	dec, err := MaybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return &stackedReadCloser{ReadCloser: dec, underlying: raw}, nil
}

// stackedReadCloser closes the decompressor and then the source it reads from.
type stackedReadCloser struct {
	io.ReadCloser
	underlying io.Closer
}

func (s *stackedReadCloser) Close() error {
	err := s.ReadCloser.Close()
	if uerr := s.underlying.Close(); err == nil {
		err = uerr
	}

	return err
}

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, path[2:])
	}

	return path
}
