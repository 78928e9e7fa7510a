package analytics

import (
	"strings"
	"sync"
	"unicode"

	"github.com/dtnitsch/headline-cloud/models"
	"github.com/go-ego/gse"
	"github.com/pemistahl/lingua-go"
)

// The dictionary and the language models are large and read-only once
// loaded, so they are shared by every Tokenizer in the process.
var (
	segOnce sync.Once
	seg     gse.Segmenter
	segErr  error

	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func segmenter() (*gse.Segmenter, error) {
	segOnce.Do(func() {
		// counts are case sensitive; gse lower-cases Latin runs by default
		gse.ToLower = false
		segErr = seg.LoadDictEmbed()
	})
	return &seg, segErr
}

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Chinese, lingua.Japanese, lingua.English).
			Build()
	})
	return detector
}

// Tokenizer splits a cleaned title into word candidates.
type Tokenizer struct {
	language models.Language
}

// NewTokenizer returns a tokenizer for the given language setting.
func NewTokenizer(language models.Language) *Tokenizer {
	if !language.Valid() {
		language = models.LanguageChinese
	}
	return &Tokenizer{language: language}
}

// Cut splits text into segments. Segments may include punctuation and
// spaces; Filter removes what should not be counted.
func (t *Tokenizer) Cut(text string) []string {
	if text == "" {
		return nil
	}
	switch t.language {
	case models.LanguageSpace:
		return strings.Fields(text)
	case models.LanguageAuto:
		if needsSegmentation(text) {
			return cutCJK(text)
		}
		return strings.Fields(text)
	default:
		return cutCJK(text)
	}
}

// needsSegmentation decides whether text is written without spaces between
// words. lingua decides for mixed text; a title with no Han or kana at all
// never needs the dictionary.
func needsSegmentation(text string) bool {
	if !hasCJK(text) {
		return false
	}
	lang, ok := languageDetector().DetectLanguageOf(text)
	if !ok {
		return true
	}
	return lang == lingua.Chinese || lang == lingua.Japanese
}

func hasCJK(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

func cutCJK(text string) []string {
	s, err := segmenter()
	if err != nil {
		// without a dictionary fall back to one token per space separated run
		return strings.Fields(text)
	}
	return s.Cut(text, true)
}
