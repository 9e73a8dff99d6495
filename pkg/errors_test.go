package pkg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sojebsikder/package-json-processor/pkg"
)

func TestIsManifestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", &pkg.Error{Kind: pkg.KindManifestNotFound, Message: "x"}, true},
		{"invalid", &pkg.Error{Kind: pkg.KindManifestInvalid, Message: "x"}, true},
		{"semver", &pkg.Error{Kind: pkg.KindInvalidSemver, Message: "x"}, true},
		{"wrapped", fmt.Errorf("load: %w", &pkg.Error{Kind: pkg.KindInvalidSemver}), true},
		{"unknown kind", &pkg.Error{Kind: "SOMETHING_ELSE", Message: "x"}, false},
		{"empty kind", &pkg.Error{Message: "x"}, false},
		{"nil typed", (*pkg.Error)(nil), false},
		{"unrelated", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkg.IsManifestError(tt.err))
		})
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &pkg.Error{Kind: pkg.KindManifestInvalid, Message: "Invalid package.json"})

	assert.ErrorIs(t, err, pkg.ErrManifestInvalid)
	assert.NotErrorIs(t, err, pkg.ErrManifestNotFound)
	assert.NotErrorIs(t, err, pkg.ErrInvalidSemver)

	kind, ok := pkg.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, pkg.KindManifestInvalid, kind)
}

func TestErrorKindValid(t *testing.T) {
	assert.True(t, pkg.KindManifestNotFound.Valid())
	assert.True(t, pkg.KindManifestInvalid.Valid())
	assert.True(t, pkg.KindInvalidSemver.Valid())
	assert.False(t, pkg.ErrorKind("PACKAGE_JSON_NOT_FOUND").Valid())
	assert.Equal(t, "MANIFEST_NOT_FOUND", string(pkg.KindManifestNotFound))
}
