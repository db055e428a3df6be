package i18n

import "errors"

var (
	ErrNilAdapter            = errors.New("i18n: adapter is nil")
	ErrNoTranslations        = errors.New("i18n: no translations loaded")
	ErrFailedToParseYAML     = errors.New("i18n: failed to parse YAML content")
	ErrInvalidCatalog        = errors.New("i18n: invalid catalog structure")
	ErrInvalidLanguage       = errors.New("i18n: invalid language tag")
	ErrFailedToReadDirectory = errors.New("i18n: failed to read catalog directory")
	ErrFailedToReadFile      = errors.New("i18n: failed to read catalog file")
)
