package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("i18n: adapter is nil")
	ErrInvalidTranslations  = errors.New("i18n: invalid translations")
	ErrUnsupportedFile      = errors.New("i18n: unsupported translation file")
	ErrEmptyFile            = errors.New("i18n: translation file is empty")
	ErrYAMLParsingCancelled = errors.New("i18n: yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("i18n: failed to parse YAML content")
	ErrLoadingFileCancelled = errors.New("i18n: loading translation file cancelled")
	ErrFailedToReadFile     = errors.New("i18n: failed to read translation file")
	ErrFailedToParseFile    = errors.New("i18n: failed to parse translation file")
)
