package dataset

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const fetchTimeout = 60 * time.Second

// FetchHTTP downloads a remote dataset to a temp file and returns its path
// plus a cleanup func.
func FetchHTTP(ctx context.Context, rawURL string) (string, func(), error) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, eris.Wrap(err, "dataset: create request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", nil, eris.Wrapf(err, "dataset: fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, eris.Errorf("dataset: fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	return saveTemp(resp.Body, rawURL)
}

// saveTemp writes r to a temp file preserving the source extension so the
// loader can pick the right parser.
func saveTemp(r io.Reader, rawURL string) (string, func(), error) {
	ext := filepath.Ext(rawURL)
	if ext == "" || len(ext) > 5 {
		ext = ".csv"
	}

	tmp, err := os.CreateTemp("", "finqa-data-*"+ext)
	if err != nil {
		return "", nil, eris.Wrap(err, "dataset: create temp file")
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, eris.Wrap(err, "dataset: download")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, eris.Wrap(err, "dataset: close temp file")
	}

	name := tmp.Name()
	cleanup := func() {
		if err := os.Remove(name); err != nil {
			zap.L().Debug("temp file cleanup failed", zap.String("path", name), zap.Error(err))
		}
	}
	return name, cleanup, nil
}
