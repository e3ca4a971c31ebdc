package resource

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedScheme is returned for URIs that are not local files.
var ErrUnsupportedScheme = errors.New("unsupported URI scheme")

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(uri string) (body []byte, contentType string, err error)
}

// FileFetcher reads resources from the local filesystem, resolving relative
// URIs against a base directory.
type FileFetcher struct {
	baseDir string
}

// NewFileFetcher creates a FileFetcher rooted at baseDir. An empty baseDir
// resolves relative URIs against the working directory.
func NewFileFetcher(baseDir string) *FileFetcher {
	return &FileFetcher{baseDir: baseDir}
}

// Resolve maps uri to a filesystem path.
func (f *FileFetcher) Resolve(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", uri, err)
	}
	switch u.Scheme {
	case "":
		p := filepath.FromSlash(u.Path)
		if !filepath.IsAbs(p) && f.baseDir != "" {
			p = filepath.Join(f.baseDir, p)
		}
		return p, nil
	case "file":
		return filepath.FromSlash(u.Path), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
}

// Fetch reads the resource at uri. The content type comes from the file
// extension and is empty when unknown.
func (f *FileFetcher) Fetch(uri string) ([]byte, string, error) {
	path, err := f.Resolve(uri)
	if err != nil {
		return nil, "", err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", uri, err)
	}
	return body, mime.TypeByExtension(filepath.Ext(path)), nil
}

// FetchCSS fetches a stylesheet URI and returns its text content.
// Returns an error if the content type does not look like CSS or text.
func (f *FileFetcher) FetchCSS(uri string) (string, error) {
	return FetchCSS(f, uri)
}

// FetchCSS fetches uri through any Fetcher and checks its content type.
func FetchCSS(f Fetcher, uri string) (string, error) {
	body, contentType, err := f.Fetch(uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return string(body), nil
}
