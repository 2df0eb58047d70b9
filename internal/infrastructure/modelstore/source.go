// Package modelstore reads model artifacts from their storage location and
// builds the process-wide prediction registry at startup.
package modelstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
)

// ErrArtifactNotFound means the artifact file does not exist at the source.
var ErrArtifactNotFound = errors.New("artifact not found")

// Source opens artifact files by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Location describes where name is read from, for logs.
	Location(name string) string
}

// DirSource reads artifacts from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.Location(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, s.Location(name))
	}
	return f, err
}

func (s DirSource) Location(name string) string {
	return filepath.Join(s.Dir, name)
}

// GCSSource reads artifacts from objects under Prefix in a Cloud Storage bucket.
type GCSSource struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func (s GCSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.Client.Bucket(s.Bucket).Object(s.object(name)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, s.Location(name))
	}
	return r, err
}

func (s GCSSource) Location(name string) string {
	return "gs://" + s.Bucket + "/" + s.object(name)
}

func (s GCSSource) object(name string) string {
	if s.Prefix == "" {
		return name
	}
	return path.Join(s.Prefix, name)
}
