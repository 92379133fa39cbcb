package dynconfig

import "github.com/alex05447/miniconfig/value"

// Config is a thin owner of a root [Table] (spec.md §4.3: "the config is
// a thin wrapper that owns it"). A zero Config has no root table: Root
// returns nil for it. [New] and [FromTable] always set a root.
type Config struct {
	root *Table
}

// New returns a Config with a fresh, empty root table.
func New() *Config {
	return &Config{root: NewTable()}
}

// FromTable wraps an existing table as a Config's root.
func FromTable(root *Table) *Config {
	if root == nil {
		root = NewTable()
	}
	return &Config{root: root}
}

// Root returns the config's root table.
func (c *Config) Root() *Table { return c.root }

// GetPath, GetBoolPath, ... delegate to value.GetPath et al. rooted at
// the config's root table; see value/path.go for the supplemented path
// accessor family (grounded on the original crate's GetPathError).
func (c *Config) GetPath(path value.Path) (value.Value, error) {
	return value.GetPath(c.root, path)
}

func (c *Config) GetBoolPath(path value.Path) (bool, error) {
	return value.GetBoolPath(c.root, path)
}

func (c *Config) GetI64Path(path value.Path) (int64, error) {
	return value.GetI64Path(c.root, path)
}

func (c *Config) GetF64Path(path value.Path) (float64, error) {
	return value.GetF64Path(c.root, path)
}

func (c *Config) GetStrPath(path value.Path) (string, error) {
	return value.GetStrPath(c.root, path)
}

func (c *Config) GetArrayPath(path value.Path) (value.ArrayReader, error) {
	return value.GetArrayPath(c.root, path)
}

func (c *Config) GetTablePath(path value.Path) (value.TableReader, error) {
	return value.GetTablePath(c.root, path)
}
