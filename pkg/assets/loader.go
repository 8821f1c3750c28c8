package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	PlaceholderWidth  = 320
	PlaceholderHeight = 200
)

// Loader resolves image references. Local refs are read relative to Root; http(s) refs
// go through the cache when one is set. Results are remembered per ref, failures
// included, so a ref is only ever attempted once.
type Loader struct {
	Root   string
	Cache  *Cache
	Client *http.Client

	log         zerolog.Logger
	mu          sync.Mutex
	images      map[string]image.Image
	failed      map[string]error
	placeholder image.Image
}

func NewLoader(root string, cache *Cache, log zerolog.Logger) *Loader {
	return &Loader{
		Root:   root,
		Cache:  cache,
		Client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
		images: make(map[string]image.Image),
		failed: make(map[string]error),
	}
}

// Load decodes the image at ref. On any failure it returns a placeholder together with a
// *MissingAssetError, so callers can warn and keep going. A failed ref keeps failing
// with the same error without touching disk or network again.
func (l *Loader) Load(ref string) (image.Image, error) {
	if img, ok, err := l.lookup(ref); ok {
		return img, err
	}
	img, data, err := l.resolve(ref)
	if err == nil && data != nil {
		l.store(ref, data)
	}
	return l.remember(ref, img, err)
}

// Preload loads every ref and returns how many fell back to the placeholder. Fresh
// downloads are written to the cache in a single batch.
func (l *Loader) Preload(refs []string) int {
	missing := 0
	downloaded := make(map[string][]byte)
	for _, ref := range refs {
		_, ok, err := l.lookup(ref)
		if !ok {
			var img image.Image
			var data []byte
			img, data, err = l.resolve(ref)
			if err == nil && data != nil {
				downloaded[ref] = data
			}
			_, err = l.remember(ref, img, err)
		}
		if err != nil {
			l.log.Warn().Err(err).Str("ref", ref).Msg("using placeholder image")
			missing++
		}
	}
	if l.Cache != nil && len(downloaded) > 0 {
		if err := l.Cache.PutBatch(downloaded); err != nil {
			l.log.Warn().Err(err).Int("count", len(downloaded)).Msg("asset cache write failed")
		}
	}
	return missing
}

func (l *Loader) lookup(ref string) (image.Image, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if img, ok := l.images[ref]; ok {
		return img, true, nil
	}
	if err, ok := l.failed[ref]; ok {
		return l.placeholderLocked(), true, err
	}
	return nil, false, nil
}

func (l *Loader) remember(ref string, img image.Image, err error) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		err = &MissingAssetError{Ref: ref, Err: err}
		l.failed[ref] = err
		return l.placeholderLocked(), err
	}
	l.images[ref] = img
	return img, nil
}

func (l *Loader) placeholderLocked() image.Image {
	if l.placeholder == nil {
		l.placeholder = Placeholder(PlaceholderWidth, PlaceholderHeight)
	}
	return l.placeholder
}

// resolve reads and decodes ref. data is non-nil only for a fresh download that has
// not been written to the cache yet.
func (l *Loader) resolve(ref string) (image.Image, []byte, error) {
	raw, fresh, err := l.read(ref)
	if err != nil {
		return nil, nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding: %w", err)
	}
	if !fresh {
		raw = nil
	}
	return img, raw, nil
}

func (l *Loader) store(ref string, data []byte) {
	if l.Cache == nil {
		return
	}
	if err := l.Cache.Put(ref, data); err != nil {
		l.log.Warn().Err(err).Str("ref", ref).Msg("asset cache write failed")
	}
}

func (l *Loader) read(ref string) ([]byte, bool, error) {
	if !isRemote(ref) {
		path := ref
		if l.Root != "" && !filepath.IsAbs(ref) {
			path = filepath.Join(l.Root, ref)
		}
		data, err := os.ReadFile(path)
		return data, false, err
	}

	if l.Cache != nil {
		data, ok, err := l.Cache.Get(ref)
		if err != nil {
			l.log.Warn().Err(err).Str("ref", ref).Msg("asset cache read failed")
		} else if ok {
			l.log.Debug().Str("ref", ref).Msg("using cached asset")
			return data, false, nil
		}
	}

	l.log.Info().Str("ref", ref).Msg("downloading asset")
	data, err := download(l.Client, ref, l.log)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
