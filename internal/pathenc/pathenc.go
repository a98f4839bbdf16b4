// Package pathenc encodes filesystem paths for persistence.
//
// Paths under the user's home directory are stored with the home prefix
// replaced by a placeholder token, so persisted metadata stays valid when
// the same repository is used on machines with different usernames. Paths
// outside the home directory are stored verbatim.
package pathenc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Token is the placeholder substituted for the user's home directory.
//
// A path whose first element is the literal token is indistinguishable from
// an encoded home-relative path. This ambiguity is accepted; no escaping is
// performed.
const Token = "<home>"

// Codec rewrites paths between their on-disk and persisted forms.
type Codec struct {
	home string
}

// New creates a Codec for the current user's home directory.
func New() (*Codec, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return &Codec{home: home}, nil
}

// NewWithHome creates a Codec rooted at an explicit home directory.
// Used by tests to avoid depending on the environment.
func NewWithHome(home string) *Codec {
	return &Codec{home: filepath.Clean(home)}
}

// Home returns the home directory the codec substitutes for.
func (c *Codec) Home() string {
	return c.home
}

// Encode converts an absolute path to its persisted form, replacing the
// home-directory prefix with Token when the path lives under it.
func (c *Codec) Encode(path string) string {
	path = filepath.Clean(path)
	if path == c.home {
		return Token
	}
	prefix := c.home + string(filepath.Separator)
	if strings.HasPrefix(path, prefix) {
		return Token + string(filepath.Separator) + strings.TrimPrefix(path, prefix)
	}
	return path
}

// Decode converts a persisted path back to an absolute path, resolving the
// placeholder token against the codec's home directory.
func (c *Codec) Decode(encoded string) string {
	if encoded == Token {
		return c.home
	}
	prefix := Token + string(filepath.Separator)
	if strings.HasPrefix(encoded, prefix) {
		return filepath.Join(c.home, strings.TrimPrefix(encoded, prefix))
	}
	return filepath.Clean(encoded)
}
