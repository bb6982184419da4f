// Package fixture embeds the sample charts used by tests.
package fixture

import (
	"embed"
	"path"
)

//go:embed *.c2s *.sus *.ugc
var files embed.FS

// Get returns the contents of the named sample chart.
func Get(name string) (string, error) {
	data, err := files.ReadFile(path.Clean(name))
	if nil != err {
		return "", err
	}
	return string(data), nil
}

// MustGet is Get for tests, panicking on a missing sample.
func MustGet(name string) string {
	s, err := Get(name)
	if nil != err {
		panic(err)
	}
	return s
}
