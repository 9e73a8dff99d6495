package pkg_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sojebsikder/package-json-processor/pkg"
)

func TestInitManifest(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, pkg.InitManifest(fs, "/work/my-app/package.json", ""))

	data, err := afero.ReadFile(fs, "/work/my-app/package.json")
	require.NoError(t, err)
	assert.Equal(t, `{
  "name": "my-app",
  "version": "1.0.0",
  "dependencies": {},
  "devDependencies": {}
}
`, string(data))

	p, err := pkg.NewProcessor("/work/my-app/package.json", pkg.WithFs(fs))
	require.NoError(t, err)
	assert.Equal(t, "my-app", p.Name())
	assert.Empty(t, p.Manifest().Entries(pkg.SectionDependencies))
}

func TestInitManifestExplicitName(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, pkg.InitManifest(fs, "/package.json", "named"))

	p, err := pkg.NewProcessor("/package.json", pkg.WithFs(fs))
	require.NoError(t, err)
	assert.Equal(t, "named", p.Name())
}

func TestInitManifestRootFallsBackToApp(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, pkg.InitManifest(fs, "/package.json", ""))

	p, err := pkg.NewProcessor("/package.json", pkg.WithFs(fs))
	require.NoError(t, err)
	assert.Equal(t, "app", p.Name())
}

func TestInitManifestRefusesOverwrite(t *testing.T) {
	fs := newFs(t, fixture)

	err := pkg.InitManifest(fs, manifestPath, "")
	assert.ErrorIs(t, err, pkg.ErrManifestExists)

	p := reload(t, fs)
	assert.Equal(t, "package-json-processor", p.Name())
}
