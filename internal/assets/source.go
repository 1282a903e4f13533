package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
)

// ErrNotFound is returned when an asset does not exist in the source.
var ErrNotFound = errors.New("asset not found")

// ProgressFunc receives the bytes read so far and the total size, or -1
// when the size is unknown.
type ProgressFunc func(loaded, total int64)

// Source reads asset files by slash-separated path.
type Source interface {
	Read(name string, progress ProgressFunc) ([]byte, error)
}

// FSSource reads assets from a file system, typically the models directory.
type FSSource struct {
	fsys fs.FS
}

// NewDirSource serves files below dir.
func NewDirSource(dir string) *FSSource {
	return &FSSource{fsys: os.DirFS(dir)}
}

// NewFSSource serves files from fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Read returns the file contents, reporting progress as chunks arrive.
func (s *FSSource) Read(name string, progress ProgressFunc) ([]byte, error) {
	f, err := s.fsys.Open(path.Clean(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	total := int64(-1)
	if info, err := f.Stat(); err == nil {
		total = info.Size()
	}

	var r io.Reader = f
	if progress != nil {
		r = &progressReader{r: f, total: total, fn: progress}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	fn     ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.fn(p.loaded, p.total)
	}
	return n, err
}

// CachedSource puts a Cache in front of another Source.
type CachedSource struct {
	src   Source
	cache *Cache
}

// NewCachedSource wraps src with cache.
func NewCachedSource(src Source, cache *Cache) *CachedSource {
	return &CachedSource{src: src, cache: cache}
}

// Read serves from the cache when possible. A cache hit reports a single
// complete progress step.
func (c *CachedSource) Read(name string, progress ProgressFunc) ([]byte, error) {
	if data, ok := c.cache.Get(name); ok {
		if progress != nil {
			progress(int64(len(data)), int64(len(data)))
		}
		return data, nil
	}
	data, err := c.src.Read(name, progress)
	if err != nil {
		return nil, err
	}
	c.cache.Set(name, data)
	return data, nil
}

// Cache returns the underlying cache.
func (c *CachedSource) Cache() *Cache {
	return c.cache
}
