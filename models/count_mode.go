package models

import (
	"fmt"
	"strings"
)

// CountMode selects the unit that gets counted.
type CountMode int

const (
	CountModeWord  CountMode = iota // Segmented words (default)
	CountModeTitle                  // Whole cleaned titles
)

func (m CountMode) String() string {
	switch m {
	case CountModeTitle:
		return "title"
	default:
		return "word"
	}
}

// ParseCountMode maps a config/flag value onto a CountMode.
func ParseCountMode(s string) (CountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word", "words":
		return CountModeWord, nil
	case "title", "titles":
		return CountModeTitle, nil
	}
	return CountModeWord, fmt.Errorf("%w: %q", ErrInvalidCountMode, s)
}

// MarshalYAML implements yaml.Marshaler.
func (m CountMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for the plain string form.
func (m *CountMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	mode, err := ParseCountMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used for environment overrides.
func (m *CountMode) UnmarshalText(text []byte) error {
	mode, err := ParseCountMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Language controls how titles are split into words.
type Language string

const (
	LanguageChinese Language = "zh"    // Dictionary segmentation for every title
	LanguageAuto    Language = "auto"  // Detect per title, segment CJK only
	LanguageSpace   Language = "space" // Split on whitespace only
)

// Valid reports whether l is one of the known languages.
func (l Language) Valid() bool {
	switch l {
	case LanguageChinese, LanguageAuto, LanguageSpace:
		return true
	}
	return false
}
