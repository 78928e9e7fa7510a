package analytics

import (
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/headline-cloud/models"
)

// defaultStopWords are dropped before counting: Chinese function words,
// punctuation and site chrome labels that show up on every listing page.
var defaultStopWords = []string{
	// site chrome
	"上一个", "下一个", "新浪",

	// ASCII punctuation
	"@", "#", "...", "$", "%", "^", "&", "*", "-", "+", "=", "/", "\\", "|", "<", ">", "'",

	// function words
	"的", "了", "在", "是", "我", "有", "和", "就", "不", "人", "都", "一", "一个",
	"上", "也", "很", "到", "说", "要", "去", "你", "会", "着", "没有", "看", "好",
	"自己", "这",

	// full width punctuation
	"。", "，", "、", "；", "：", "“", "”", "‘", "’", "（", "）", "《", "》",
	"？", "！", "…", "—", "·", "「", "」",
}

// StopWords is an immutable set of tokens excluded from counting.
type StopWords map[string]struct{}

// NewStopWords returns the default set plus extra.
func NewStopWords(extra ...string) StopWords {
	set := make(StopWords, len(defaultStopWords)+len(extra))
	for _, w := range defaultStopWords {
		set[w] = struct{}{}
	}
	for _, w := range extra {
		if w = strings.TrimSpace(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Contains reports whether word is in the set. Matching is exact.
func (s StopWords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

var defaultSet = NewStopWords()

// Analytics turns raw titles into countable tokens.
type Analytics struct {
	Mode      models.CountMode
	StopWords StopWords
	Tokenizer *Tokenizer
}

// New builds an Analytics from the configuration.
func New(cfg *models.Config) *Analytics {
	return &Analytics{
		Mode:      cfg.CountMode,
		StopWords: NewStopWords(cfg.ExtraStopWords...),
		Tokenizer: NewTokenizer(cfg.Language),
	}
}

// Tokens cleans every title and returns the tokens to count, in order.
// Title mode counts whole cleaned titles; word mode segments them first.
func (a *Analytics) Tokens(titles []string) []string {
	stop := a.StopWords
	if stop == nil {
		stop = defaultSet
	}

	if a.Mode == models.CountModeTitle {
		out := make([]string, 0, len(titles))
		for _, title := range titles {
			cleaned := CleanTitle(title)
			if cleaned == "" || stop.Contains(cleaned) {
				continue
			}
			out = append(out, cleaned)
		}
		return out
	}

	tok := a.Tokenizer
	if tok == nil {
		tok = NewTokenizer(models.LanguageChinese)
	}
	var words []string
	for _, title := range titles {
		words = append(words, tok.Cut(CleanTitle(title))...)
	}
	return Filter(words, stop)
}

// Filter drops stop-words, blank tokens and tokens of a single character.
func Filter(words []string, stop StopWords) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		if stop.Contains(w) || utf8.RuneCountInString(w) <= 1 {
			continue
		}
		out = append(out, w)
	}
	return out
}
