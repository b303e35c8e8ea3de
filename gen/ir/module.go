package ir

// NamedImport is one named binding. Alias, when set, renames the binding
// locally: import { Name as Alias }.
type NamedImport struct {
	Name  string
	Alias string
}

// Local returns the name the binding introduces in the importing file.
func (n NamedImport) Local() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}

// ImportConfig is the import table entry for one module.
// Entries that resolve to zero bindings are skipped unless SideEffect is set.
type ImportConfig struct {
	Module     string
	Default    string
	Namespace  string
	Named      []NamedImport
	TypeOnly   bool
	SideEffect bool
}

// Import returns an import configuration with named bindings.
func Import(module string, named ...string) ImportConfig {
	cfg := ImportConfig{Module: module}
	for _, n := range named {
		cfg.Named = append(cfg.Named, NamedImport{Name: n})
	}
	return cfg
}

// DefaultImport returns import name from module.
func DefaultImport(module, name string) ImportConfig {
	return ImportConfig{Module: module, Default: name}
}

// Bindings returns the number of bindings the entry introduces.
func (c ImportConfig) Bindings() int {
	n := len(c.Named)
	if c.Default != "" {
		n++
	}
	if c.Namespace != "" {
		n++
	}
	return n
}

// ExportBinding is one exported name, optionally renamed.
type ExportBinding struct {
	Name  string
	Alias string
}

// ExportConfig describes named exports. An empty Module exports local
// bindings; otherwise the names are re-exported from Module. Entries sharing
// a Module are merged into one declaration. Default exports a local
// expression as the module default.
type ExportConfig struct {
	Module  string
	Names   []ExportBinding
	Default string
}

// Export returns a local named export.
func Export(names ...string) ExportConfig {
	cfg := ExportConfig{}
	for _, n := range names {
		cfg.Names = append(cfg.Names, ExportBinding{Name: n})
	}
	return cfg
}

// ReExport returns export { names } from module.
func ReExport(module string, names ...string) ExportConfig {
	cfg := Export(names...)
	cfg.Module = module
	return cfg
}

// ExportDefault returns export default name.
func ExportDefault(name string) ExportConfig {
	return ExportConfig{Default: name}
}
