package model

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

const (
	// FormatName identifies a siaga model artifact.
	FormatName = "siaga.model-bundle"

	// FormatVersion is the artifact version written by Encode.
	FormatVersion = "v1.0.0"

	// DefaultThreshold applies when the artifact declares none.
	DefaultThreshold = 0.5
)

//go:embed bundle.schema.json
var bundleSchemaJSON []byte

var (
	bundleSchemaOnce sync.Once
	bundleSchema     *jsonschema.Schema
	bundleSchemaErr  error
)

// Bundle is a loaded model artifact. It is immutable after Decode.
type Bundle struct {
	FormatVersion string
	Features      []string
	Threshold     float64
	Metadata      map[string]string
	Classifier    Classifier
}

// Name returns the model's display name from its metadata.
func (b *Bundle) Name() string {
	if n := b.Metadata["name"]; n != "" {
		return n
	}
	return "unnamed model"
}

// FeatureNames returns a copy of the declared feature list.
func (b *Bundle) FeatureNames() []string {
	out := make([]string, len(b.Features))
	copy(out, b.Features)
	return out
}

type document struct {
	Format        string            `json:"format"`
	FormatVersion string            `json:"format_version"`
	Features      []string          `json:"features"`
	Threshold     *float64          `json:"decision_threshold,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Classifier    json.RawMessage   `json:"classifier"`
}

// Load reads the artifact at path. A missing file yields an error matching
// ErrArtifactMissing; anything else that prevents use yields
// ErrArtifactCorrupt.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ArtifactError{Path: path, Kind: ErrArtifactMissing}
		}
		return nil, &ArtifactError{Path: path, Kind: ErrArtifactCorrupt, Err: err}
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, &ArtifactError{Path: path, Kind: ErrArtifactCorrupt, Err: err}
	}
	return b, nil
}

// Decode parses and validates an artifact.
func Decode(r io.Reader) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledBundleSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if !semver.IsValid(doc.FormatVersion) || semver.Major(doc.FormatVersion) != semver.Major(FormatVersion) {
		return nil, fmt.Errorf("unsupported format_version %q (want %s.x.x)", doc.FormatVersion, semver.Major(FormatVersion))
	}

	clf, err := decodeClassifier(doc.Classifier, len(doc.Features))
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	threshold := DefaultThreshold
	if doc.Threshold != nil {
		threshold = *doc.Threshold
	}

	return &Bundle{
		FormatVersion: doc.FormatVersion,
		Features:      doc.Features,
		Threshold:     threshold,
		Metadata:      doc.Metadata,
		Classifier:    clf,
	}, nil
}

// Encode writes b as an indented artifact.
func Encode(w io.Writer, b *Bundle) error {
	raw, err := json.Marshal(b.Classifier)
	if err != nil {
		return fmt.Errorf("encode classifier: %w", err)
	}
	version := b.FormatVersion
	if version == "" {
		version = FormatVersion
	}
	threshold := b.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	doc := document{
		Format:        FormatName,
		FormatVersion: version,
		Features:      b.Features,
		Threshold:     &threshold,
		Metadata:      b.Metadata,
		Classifier:    raw,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func compiledBundleSchema() (*jsonschema.Schema, error) {
	bundleSchemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(bundleSchemaJSON))
		if err != nil {
			bundleSchemaErr = fmt.Errorf("parse bundle schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://siaga/model-bundle.json"
		if err := c.AddResource(url, def); err != nil {
			bundleSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		bundleSchema, bundleSchemaErr = c.Compile(url)
	})
	return bundleSchema, bundleSchemaErr
}
