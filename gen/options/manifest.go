package options

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(false)
	return d
}

// Manifest describes one scaffolding run: the options and the files to write.
type Manifest struct {
	Options Raw            `yaml:"options"`
	Files   []ManifestFile `yaml:"files"`
}

// ManifestFile asks for one template to be written. An empty Path uses the
// template's default destination.
type ManifestFile struct {
	Template string `yaml:"template"`
	Path     string `yaml:"path,omitempty"`
}

// LoadManifest decodes a YAML manifest. Unknown keys are errors.
func LoadManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return &m, nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	for i, f := range m.Files {
		if f.Template == "" {
			return nil, fmt.Errorf("manifest files[%d]: missing template", i)
		}
	}
	return &m, nil
}

// ReadManifest loads the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := LoadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Set overlays key=value pairs (as given to --set) onto raw. Keys use the
// option names, e.g. "databaseOrm=prisma".
func (raw *Raw) Set(pairs ...string) error {
	values := url.Values{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return fmt.Errorf("invalid option %q: want key=value", p)
		}
		values.Set(strings.TrimSpace(k), v)
	}
	return FromValues(raw, values)
}

// FromValues decodes form-style values onto raw. Keys not present in values
// leave the corresponding fields unchanged.
func FromValues(raw *Raw, values url.Values) error {
	if err := decoder.Decode(raw, values); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	return nil
}
