package models

import "errors"

// Configuration errors returned by LoadConfig, Config.ApplyEnv and Config.Validate.
// Callers can match them with errors.Is.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrNoSources is returned when no source URL is configured.
	ErrNoSources = errors.New("no sources configured: provide --urls, --feeds or a config file")

	// ErrInvalidTopN is returned when top_n is not positive.
	ErrInvalidTopN = errors.New("invalid top_n: must be positive")

	// ErrInvalidCanvas is returned when the canvas width or height is not positive.
	ErrInvalidCanvas = errors.New("invalid canvas size: width and height must be positive")

	// ErrInvalidFontSize is returned when max_font_size is not positive or
	// min_font_size exceeds it.
	ErrInvalidFontSize = errors.New("invalid font size: need 0 < min_font_size <= max_font_size")

	// ErrInvalidCountMode is returned for an unknown count_mode value.
	ErrInvalidCountMode = errors.New("invalid count mode: use word or title")

	// ErrInvalidLanguage is returned for an unknown language value.
	ErrInvalidLanguage = errors.New("invalid language: use zh, auto or space")

	// ErrInvalidSourceKind is returned for a source whose kind is not html or feed.
	ErrInvalidSourceKind = errors.New("invalid source kind: use html or feed")

	// ErrInvalidEnv is returned when a HEADLINE_CLOUD_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment override")

	// ErrInvalidURL is returned when a source URL fails sanitising.
	ErrInvalidURL = errors.New("invalid source URL")
)
