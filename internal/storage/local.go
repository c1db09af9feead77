package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
)

const maxNameAttempts = 10

type localStore struct {
	dir          string
	publicPrefix string
	now          func() time.Time
}

// NewLocalStore stores images in dir and references them as publicPrefix/<name>.
func NewLocalStore(dir, publicPrefix string) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}

	return &localStore{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		now:          time.Now,
	}, nil
}

func (s *localStore) Save(ctx context.Context, upload *models.ImageUpload) (string, error) {
	body, contentType, err := sniff(upload)
	if err != nil {
		return "", err
	}

	now := s.now()

	for range maxNameAttempts {
		name := objectName(now, contentType)

		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			now = now.Add(time.Millisecond)
			continue
		}

		if err != nil {
			return "", fmt.Errorf("creating image file: %w", err)
		}

		if _, err := io.Copy(f, body); err != nil {
			f.Close()
			os.Remove(f.Name())

			return "", fmt.Errorf("writing image file: %w", err)
		}

		if err := f.Close(); err != nil {
			return "", fmt.Errorf("closing image file: %w", err)
		}

		slog.Debug("Stored uploaded image", slog.String("name", name))

		return path.Join(s.publicPrefix, name), nil
	}

	return "", fmt.Errorf("no free file name for %s after %d attempts", upload.Filename, maxNameAttempts)
}

func (s *localStore) Owns(ref string) bool {
	return strings.HasPrefix(ref, s.publicPrefix+"/")
}

func (s *localStore) Delete(ctx context.Context, ref string) error {
	if !s.Owns(ref) {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(ref, s.publicPrefix+"/"))
	if name == "." || name == "/" || name == ".." {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing image file: %w", err)
	}

	return nil
}
