package minio

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/KeyIP-Descriptors/internal/application/pipeline"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// ArtifactStore uploads exported tables under <prefix><run id>/<file name>.
type ArtifactStore struct {
	client *MinIOClient
	logger logging.Logger
}

var _ pipeline.ArtifactStore = (*ArtifactStore)(nil)

// NewArtifactStore creates an ArtifactStore on client.
func NewArtifactStore(client *MinIOClient, log logging.Logger) *ArtifactStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ArtifactStore{client: client, logger: log}
}

// ObjectKey returns the key a table from localPath is stored under.
func (s *ArtifactStore) ObjectKey(runID, localPath string) string {
	return s.client.config.Prefix + path.Join(runID, filepath.Base(localPath))
}

// UploadTable uploads the file at localPath and returns its s3:// URI.
func (s *ArtifactStore) UploadTable(ctx context.Context, runID, localPath string) (string, error) {
	if runID == "" || localPath == "" {
		return "", errors.InvalidParam("run id and path are required")
	}
	if s.client.isClosed() {
		return "", ErrMinIOClientClosed
	}

	bucket := s.client.config.Bucket
	key := s.ObjectKey(runID, localPath)
	info, err := s.client.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{
		ContentType:  contentTypeFor(localPath),
		UserMetadata: map[string]string{"run-id": runID},
		UserTags:     map[string]string{"kind": "descriptor-table"},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "upload failed").WithDetail(key)
	}

	s.logger.Debug("table uploaded",
		logging.String("bucket", bucket),
		logging.String("key", key),
		logging.Int64("size", info.Size),
		logging.String("etag", info.ETag))
	return "s3://" + bucket + "/" + key, nil
}

func contentTypeFor(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".tsv", ".tab":
		return "text/tab-separated-values"
	case ".csv":
		return "text/csv"
	}
	return "text/plain"
}

//Personal.AI order the ending
