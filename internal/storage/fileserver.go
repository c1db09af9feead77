package storage

import (
	"io/fs"
	"net/http"
)

// filesOnly hides directories so the file server never renders a listing.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}

// NewFileServer serves the files stored under dir. Directory paths are 404.
func NewFileServer(dir string) http.Handler {
	return http.FileServer(filesOnly{fs: http.Dir(dir)})
}
