package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	"google.golang.org/api/option"
)

const (
	defaultGCSBaseURL = "https://storage.googleapis.com"
	gcsObjectPrefix   = "products/"
)

type gcsStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
	now     func() time.Time
}

// NewGCSClient builds a storage client, using credentialsFile when set and
// application default credentials otherwise.
func NewGCSClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient failed: %w", err)
	}

	return client, nil
}

// NewGCSStore keeps images in bucket. Objects are expected to be publicly
// readable through bucket IAM, references are baseURL/bucket/object.
func NewGCSStore(client *storage.Client, bucket, baseURL string) ImageStore {
	if baseURL == "" {
		baseURL = defaultGCSBaseURL
	}

	return &gcsStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (s *gcsStore) refPrefix() string {
	return s.baseURL + "/" + s.bucket + "/"
}

func (s *gcsStore) Save(ctx context.Context, upload *models.ImageUpload) (string, error) {
	body, contentType, err := sniff(upload)
	if err != nil {
		return "", err
	}

	object := gcsObjectPrefix + objectName(s.now(), contentType)

	w := s.client.Bucket(s.bucket).Object(object).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"originalName": upload.Filename,
	}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("uploading %s: %w", object, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing %s: %w", object, err)
	}

	return s.refPrefix() + object, nil
}

func (s *gcsStore) Owns(ref string) bool {
	return strings.HasPrefix(ref, s.refPrefix())
}

func (s *gcsStore) Delete(ctx context.Context, ref string) error {
	if !s.Owns(ref) {
		return nil
	}

	object := strings.TrimPrefix(ref, s.refPrefix())

	err := s.client.Bucket(s.bucket).Object(object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("deleting %s: %w", object, err)
	}

	return nil
}
