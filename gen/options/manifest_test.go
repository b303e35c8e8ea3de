package options

import (
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const manifestYAML = `
options:
  projectName: shop
  database: true
  databaseOrm: sequelize
  dialect: postgres
  webSockets: false
files:
  - template: server
  - template: database
    path: src/db.ts
`

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest(strings.NewReader(manifestYAML))
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	wantRaw := Raw{ProjectName: "shop", Database: "true", DatabaseOrm: "sequelize", Dialect: "postgres", WebSockets: "false"}
	if m.Options != wantRaw {
		t.Errorf("Options = %+v, want %+v", m.Options, wantRaw)
	}
	wantFiles := []ManifestFile{{Template: "server"}, {Template: "database", Path: "src/db.ts"}}
	if !reflect.DeepEqual(m.Files, wantFiles) {
		t.Errorf("Files = %+v, want %+v", m.Files, wantFiles)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "options:\n  colour: blue\n", "colour"},
		{"missing template", "files:\n  - path: x.ts\n", "missing template"},
		{"bad yaml", "options: [\n", "decode manifest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(strings.NewReader(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadManifest() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestReadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expressgen.yaml")
	if err := os.WriteFile(path, []byte(manifestYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if m.Options.ProjectName != "shop" {
		t.Errorf("ProjectName = %q", m.Options.ProjectName)
	}
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRawSet(t *testing.T) {
	raw := Raw{ProjectName: "shop", DatabaseOrm: "sequelize"}
	if err := raw.Set("databaseOrm=prisma", "webSockets=true", "viewEngine=pug"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	want := Raw{ProjectName: "shop", DatabaseOrm: "prisma", WebSockets: "true", ViewEngine: "pug"}
	if raw != want {
		t.Errorf("raw = %+v, want %+v", raw, want)
	}

	if err := raw.Set("novalue"); err == nil {
		t.Error("expected error for pair without '='")
	}
	if err := raw.Set("colour=blue"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestFromValues(t *testing.T) {
	var raw Raw
	err := FromValues(&raw, url.Values{"projectName": {"api"}, "authLib": {"passport"}})
	if err != nil {
		t.Fatalf("FromValues() error = %v", err)
	}
	if raw.ProjectName != "api" || raw.AuthLib != "passport" {
		t.Errorf("raw = %+v", raw)
	}
}
