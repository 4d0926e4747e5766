package render

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/bitmark-inc/ncp-map/utils"
)

//go:embed i18n/*.yaml
var messages embed.FS

var messageFiles = []string{"i18n/zh.yaml", "i18n/en.yaml"}

// titles - localized chart titles
type titles struct {
	localizer *i18n.Localizer
}

func newTitles(lang string) (*titles, error) {
	bundle, err := utils.LoadI18NBundle(messages, messageFiles...)
	if err != nil {
		return nil, err
	}
	return &titles{localizer: utils.NewLocalizer(bundle, lang, language.Chinese.String())}, nil
}

func (t *titles) text(id string, data map[string]interface{}) (string, error) {
	return t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
}
