package pkg

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var ErrManifestExists = errors.New("package.json already exists")

// InitManifest writes a default manifest to path. When name is empty the
// name of the enclosing directory is used, falling back to "app".
func InitManifest(fs afero.Fs, path, name string) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: %w", path, ErrManifestExists)
	}

	if name == "" {
		name = filepath.Base(filepath.Dir(path))
		if name == "." || name == string(filepath.Separator) {
			name = "app"
		}
	}

	m := NewManifest()
	m.SetStringField("name", name)
	m.SetStringField("version", "1.0.0")
	m.Set(string(SectionDependencies), orderedmap.New[string, any]())
	m.Set(string(SectionDevDependencies), orderedmap.New[string, any]())

	data, err := m.Encode()
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0644)
}
