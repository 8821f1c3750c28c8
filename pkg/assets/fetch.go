// Package assets loads the globe texture and city photos from disk or over HTTP, with a
// badger-backed byte cache for remote references and a placeholder for anything missing.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("asset not found on server")

// MissingAssetError reports an image that could not be loaded. The loader still returns
// a placeholder alongside it.
type MissingAssetError struct {
	Ref string
	Err error
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("missing asset %s: %v", e.Ref, e.Err)
}

func (e *MissingAssetError) Unwrap() error { return e.Err }

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

type progressWriter struct {
	io.Writer
	total uint64
	last  uint64
	label string
	log   zerolog.Logger
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.total += uint64(n)
	if pw.total-pw.last > 1024*1024 { // Log every 1MB
		pw.log.Debug().Str("ref", pw.label).Uint64("mb", pw.total/1024/1024).Msg("downloading")
		pw.last = pw.total
	}
	return n, err
}

// download fetches url into memory.
func download(client *http.Client, url string, log zerolog.Logger) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("closing response body")
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var buf bytes.Buffer
	pw := &progressWriter{Writer: &buf, label: url, log: log}
	if _, err := io.Copy(pw, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
