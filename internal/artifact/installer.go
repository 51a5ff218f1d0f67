// Package artifact installs model artifacts into the path the form loads
// them from.
package artifact

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/config"
	"github.com/abhisek/siaga/internal/model"
)

var ErrChecksum = errors.New("checksum verification failed")

// artifactName is the file looked up inside .tar.gz archives.
const artifactName = "model.json"

// maxArtifactSize bounds downloads and archive members.
const maxArtifactSize = 64 << 20

// Source locates an artifact to install.
type Source struct {
	// Location is an http(s) URL or a local path. Paths ending in .tar.gz
	// or .tgz are archives holding a model.json.
	Location string

	// SHA256 is the expected hex digest of the downloaded bytes.
	SHA256 string

	// ChecksumsURL points at a sha256sum-style list holding an entry for
	// the base name of Location. Ignored when SHA256 is set.
	ChecksumsURL string
}

// Progress reports one installation stage.
type Progress struct {
	Stage   string
	Message string
}

// Installer fetches, verifies and atomically installs artifacts.
type Installer struct {
	client *http.Client
	logger *zap.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(i *Installer) { i.client = &http.Client{Timeout: d} }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Installer) { i.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(i *Installer) { i.logger = l }
}

// New creates an Installer.
func New(opts ...Option) *Installer {
	i := &Installer{
		client: &http.Client{Timeout: time.Minute},
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(i)
	}
	i.logger = i.logger.Named("artifact")
	return i
}

// Install fetches src, verifies its checksum when one is given, checks that
// it decodes as a bundle and renames it into dest. dest is left untouched on
// any failure. A form waiting on dest picks the file up from the rename.
func (i *Installer) Install(ctx context.Context, src Source, dest string, progress func(Progress)) (*model.Bundle, error) {
	if progress == nil {
		progress = func(Progress) {}
	}

	progress(Progress{Stage: "download", Message: fmt.Sprintf("Fetching %s...", src.Location)})
	data, err := i.fetch(ctx, src.Location)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}

	expected, err := i.expectedDigest(ctx, src)
	if err != nil {
		return nil, err
	}
	if expected != "" {
		progress(Progress{Stage: "verify", Message: "Verifying checksum..."})
		if err := verifyChecksum(data, expected); err != nil {
			return nil, err
		}
	}

	if isArchive(src.Location) {
		if data, err = extractFromTarGz(data, artifactName); err != nil {
			return nil, err
		}
	}

	progress(Progress{Stage: "validate", Message: "Validating model..."})
	b, err := model.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &model.ArtifactError{Path: src.Location, Kind: model.ErrArtifactCorrupt, Err: err}
	}

	progress(Progress{Stage: "install", Message: fmt.Sprintf("Installing to %s...", dest)})
	if err := WriteAtomic(data, dest); err != nil {
		return nil, err
	}

	i.logger.Info("artifact installed",
		zap.String("source", src.Location),
		zap.String("dest", dest),
		zap.String("model", b.Name()),
		zap.Int("features", len(b.Features)),
	)
	return b, nil
}

func (i *Installer) expectedDigest(ctx context.Context, src Source) (string, error) {
	if src.SHA256 != "" {
		return strings.ToLower(src.SHA256), nil
	}
	if src.ChecksumsURL == "" {
		return "", nil
	}
	list, err := i.fetch(ctx, src.ChecksumsURL)
	if err != nil {
		return "", fmt.Errorf("fetch checksums: %w", err)
	}
	name := path.Base(src.Location)
	sum, ok := parseChecksums(list)[name]
	if !ok {
		return "", fmt.Errorf("no checksum found for %s in %s", name, src.ChecksumsURL)
	}
	return strings.ToLower(sum), nil
}

func (i *Installer) fetch(ctx context.Context, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		f, err := os.Open(location)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readLimited(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, location)
	}
	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxArtifactSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxArtifactSize {
		return nil, fmt.Errorf("artifact larger than %d bytes", maxArtifactSize)
	}
	return data, nil
}

// parseChecksums reads "<hex>  <name>" lines.
func parseChecksums(data []byte) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		// sha256sum marks binary mode with a leading '*'.
		result[strings.TrimPrefix(parts[1], "*")] = parts[0]
	}
	return result
}

func verifyChecksum(data []byte, expectedHex string) error {
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if actual != expectedHex {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}

func isArchive(location string) bool {
	return strings.HasSuffix(location, ".tar.gz") || strings.HasSuffix(location, ".tgz")
}

func extractFromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if filepath.Base(hdr.Name) == name && hdr.FileInfo().Mode().IsRegular() {
			return readLimited(tr)
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// WriteAtomic writes data to a temporary file next to dest and renames it
// into place, so readers never see a partial artifact. Missing parent
// directories are created.
func WriteAtomic(data []byte, dest string) error {
	if err := config.EnsureDir(dest); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(dest), ".siaga-model-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Re-read and compare so a file swapped after writing is not installed.
	written, err := os.ReadFile(tmp)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if sha256.Sum256(written) != sha256.Sum256(data) {
		return fmt.Errorf("%w: temp file changed after write", ErrChecksum)
	}

	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
