package dataset

import (
	"context"
	"net"
	"net/url"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FetchFTP downloads a dataset over anonymous FTP to a temp file and returns
// its path plus a cleanup func.
func FetchFTP(ctx context.Context, rawURL string) (string, func(), error) {
	host, remotePath, err := parseFTPURL(rawURL)
	if err != nil {
		return "", nil, err
	}

	zap.L().Debug("ftp fetch", zap.String("host", host), zap.String("path", remotePath))

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(fetchTimeout), ftp.DialWithContext(ctx))
	if err != nil {
		return "", nil, eris.Wrap(err, "dataset: ftp dial")
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous@"); err != nil {
		return "", nil, eris.Wrap(err, "dataset: ftp login")
	}

	resp, err := conn.Retr(remotePath)
	if err != nil {
		return "", nil, eris.Wrap(err, "dataset: ftp retrieve")
	}
	defer resp.Close()

	return saveTemp(resp, rawURL)
}

func parseFTPURL(rawURL string) (host string, path string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", eris.Wrap(err, "dataset: parse ftp url")
	}
	if u.Scheme != "ftp" {
		return "", "", eris.Errorf("dataset: expected ftp scheme, got %q", u.Scheme)
	}

	host = u.Host
	if _, _, splitErr := net.SplitHostPort(host); splitErr != nil {
		host = net.JoinHostPort(host, "21")
	}

	if u.Path == "" {
		return "", "", eris.New("dataset: empty path in ftp url")
	}
	return host, u.Path, nil
}
