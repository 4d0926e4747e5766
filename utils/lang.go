package utils

import (
	"io/fs"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// LoadI18NBundle loads yaml message files from fsys. The language of a file
// is taken from its name, like zh.yaml or en.yaml.
func LoadI18NBundle(fsys fs.FS, files ...string) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.Chinese)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, err
		}

		if _, err := bundle.ParseMessageFileBytes(data, path.Base(f)); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

// NewLocalizer matches langs in order of preference
func NewLocalizer(bundle *i18n.Bundle, langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, langs...)
}
