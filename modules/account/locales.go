package account

import (
	"context"
	"embed"

	"github.com/dmitrymomot/formflow/pkg/i18n"
)

//go:embed locales/*.yaml
var locales embed.FS

// NewTranslator loads the bundled en and pt-BR catalogs.
func NewTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"), opts...)
}
