package gen

import (
	"log/slog"

	"github.com/broady/expressgen/gen/options"
)

// OptionFlags are the option inputs shared by gen and render. Later sources
// win: manifest, then --name, then --set pairs.
type OptionFlags struct {
	Manifest string   `help:"YAML manifest with options and files." short:"m" type:"existingfile"`
	Name     string   `help:"Project name (overrides the manifest)." short:"n"`
	Set      []string `help:"Option override, e.g. databaseOrm=prisma (repeatable)." short:"s" placeholder:"KEY=VALUE"`
}

// Load resolves the flags into validated options. The manifest, if any, is
// returned so callers can read its file list.
func (f *OptionFlags) Load(logger *slog.Logger) (options.Options, *options.Manifest, error) {
	m := &options.Manifest{}
	if f.Manifest != "" {
		var err error
		if m, err = options.ReadManifest(f.Manifest); err != nil {
			return options.Options{}, nil, err
		}
	}
	raw := m.Options
	if f.Name != "" {
		raw.ProjectName = f.Name
	}
	if err := raw.Set(f.Set...); err != nil {
		return options.Options{}, nil, err
	}

	opts, warns := options.Normalize(raw)
	for _, w := range warns {
		logger.Warn("unsupported option value", "field", w.Field, "value", w.Value)
	}
	if err := options.Validate(opts); err != nil {
		return options.Options{}, nil, err
	}
	return opts, m, nil
}
