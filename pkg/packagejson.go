package pkg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const ManifestFileName = "package.json"

// PackageJSON is a typed view of the well-known manifest fields.
type PackageJSON struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Version         string            `json:"version"`
	License         string            `json:"license"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

type Dependency struct {
	PackageName string
	Version     string
}

type Script struct {
	Key     string
	Command string
}

// Processor reads package.json once at construction and writes it back only
// when Save is called.
type Processor struct {
	path     string
	fs       afero.Fs
	logger   zerolog.Logger
	mode     os.FileMode
	manifest *Manifest
}

type Option func(*Processor)

func WithFs(fs afero.Fs) Option {
	return func(p *Processor) {
		p.fs = fs
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

func WithFileMode(mode os.FileMode) Option {
	return func(p *Processor) {
		p.mode = mode
	}
}

// DefaultManifestPath returns package.json in the current working directory.
func DefaultManifestPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ManifestFileName), nil
}

func NewProcessorInWorkingDir(opts ...Option) (*Processor, error) {
	path, err := DefaultManifestPath()
	if err != nil {
		return nil, newError(KindManifestNotFound, "Could not read package.json", err)
	}
	return NewProcessor(path, opts...)
}

// NewProcessor reads and parses the manifest at path. A read failure yields
// KindManifestNotFound, a parse failure KindManifestInvalid.
func NewProcessor(path string, opts ...Option) (*Processor, error) {
	p := &Processor{
		path:   path,
		fs:     afero.NewOsFs(),
		logger: zerolog.Nop(),
		mode:   0644,
	}
	for _, opt := range opts {
		opt(p)
	}

	data, err := afero.ReadFile(p.fs, p.path)
	if err != nil {
		p.logger.Debug().Err(err).Str("path", p.path).Msg("could not read manifest")
		return nil, newError(KindManifestNotFound, "Could not read package.json", err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		p.logger.Debug().Err(err).Str("path", p.path).Msg("could not parse manifest")
		return nil, newError(KindManifestInvalid, "Invalid package.json", err)
	}
	p.manifest = manifest

	p.logger.Debug().
		Str("path", p.path).
		Int("keys", manifest.Len()).
		Msg("loaded manifest")
	return p, nil
}

func (p *Processor) Path() string {
	return p.path
}

// Manifest returns the live in-memory document, not a copy.
func (p *Processor) Manifest() *Manifest {
	return p.manifest
}

func (p *Processor) Name() string        { return p.manifest.StringField("name") }
func (p *Processor) Description() string { return p.manifest.StringField("description") }
func (p *Processor) Version() string     { return p.manifest.StringField("version") }
func (p *Processor) License() string     { return p.manifest.StringField("license") }

func (p *Processor) SetName(name string)        { p.manifest.SetStringField("name", name) }
func (p *Processor) SetDescription(desc string) { p.manifest.SetStringField("description", desc) }
func (p *Processor) SetLicense(license string)  { p.manifest.SetStringField("license", license) }

// SetRawVersion writes version without validating it.
func (p *Processor) SetRawVersion(version string) {
	p.manifest.SetStringField("version", version)
}

// SetVersion writes version after checking it is a strict semantic version.
// On failure the manifest is left untouched.
func (p *Processor) SetVersion(version string) (*Processor, error) {
	if !ValidSemver(version) {
		return nil, newError(KindInvalidSemver, fmt.Sprintf("Invalid semver version: %s", version), nil)
	}
	p.manifest.SetStringField("version", version)
	p.logger.Debug().Str("version", version).Msg("set version")
	return p, nil
}

func (p *Processor) AddDependency(dep Dependency) *Processor {
	p.manifest.SetEntry(SectionDependencies, dep.PackageName, dep.Version)
	p.logger.Debug().Str("package", dep.PackageName).Str("version", dep.Version).Msg("added dependency")
	return p
}

func (p *Processor) AddDevDependency(dep Dependency) *Processor {
	p.manifest.SetEntry(SectionDevDependencies, dep.PackageName, dep.Version)
	p.logger.Debug().Str("package", dep.PackageName).Str("version", dep.Version).Msg("added dev dependency")
	return p
}

func (p *Processor) AddScript(script Script) *Processor {
	p.manifest.SetEntry(SectionScripts, script.Key, script.Command)
	p.logger.Debug().Str("script", script.Key).Msg("added script")
	return p
}

func (p *Processor) Dependency(name string) (string, bool) {
	return p.manifest.Entry(SectionDependencies, name)
}

func (p *Processor) DevDependency(name string) (string, bool) {
	return p.manifest.Entry(SectionDevDependencies, name)
}

func (p *Processor) Script(key string) (string, bool) {
	return p.manifest.Entry(SectionScripts, key)
}

// RemoveDependency drops name from both dependencies and devDependencies.
// It reports whether anything was removed.
func (p *Processor) RemoveDependency(name string) bool {
	removed := p.manifest.DeleteEntry(SectionDependencies, name)
	if p.manifest.DeleteEntry(SectionDevDependencies, name) {
		removed = true
	}
	if removed {
		p.logger.Debug().Str("package", name).Msg("removed dependency")
	}
	return removed
}

// PackageJSON decodes the well-known fields of the current document.
func (p *Processor) PackageJSON() (*PackageJSON, error) {
	data, err := p.manifest.Encode()
	if err != nil {
		return nil, err
	}
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to decode package.json fields: %w", err)
	}
	return &pkg, nil
}

// Save overwrites the manifest file with the current in-memory document.
func (p *Processor) Save() error {
	data, err := p.manifest.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode package.json: %w", err)
	}
	if err := afero.WriteFile(p.fs, p.path, data, p.mode); err != nil {
		p.logger.Warn().Err(err).Str("path", p.path).Msg("failed to write manifest")
		return fmt.Errorf("failed to write %s: %w", p.path, err)
	}
	p.logger.Debug().Str("path", p.path).Int("bytes", len(data)).Msg("saved manifest")
	return nil
}
