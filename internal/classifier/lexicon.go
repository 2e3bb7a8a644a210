package classifier

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"lectern/internal/textutil"
)

// Entry is a single weighted keyword.
type Entry struct {
	Keyword string  `json:"keyword"`
	Weight  float64 `json:"weight"`
}

// Lexicon is a read-only set of weighted keywords. The zero value is empty.
type Lexicon struct {
	entries []Entry
	index   map[string]float64
}

var defaultEntries = []Entry{
	{"learn", 1.5},
	{"understand", 1.2},
	{"explain", 1.5},
	{"definition", 1.2},
	{"concept", 1.2},
	{"introduction", 1.2},
	{"lecture", 2.0},
	{"tutorial", 2.0},
	{"course", 2.0},
	{"how to", 2.5},
	{"step by step", 2.5},
	{"topic", 1.0},
	{"study", 1.5},
	{"class", 1.0},
	{"teacher", 1.0},
	{"coding", 2.0},
	{"programming", 2.0},
	{"science", 1.5},
	{"math", 1.5},
	{"physics", 1.5},
	{"chemistry", 1.5},
	{"data", 1.0},
	{"statistics", 1.5},
	{"algorithm", 2.0},
	{"history", 1.5},
	{"geography", 1.2},
	{"education", 2.0},
	{"knowledge", 1.2},
}

// DefaultLexicon returns the built-in educational vocabulary.
func DefaultLexicon() *Lexicon {
	lex, err := NewLexicon(defaultEntries)
	if err != nil {
		panic(fmt.Sprintf("classifier: invalid default lexicon: %v", err))
	}
	return lex
}

// NewLexicon validates entries and returns an immutable lexicon. Keywords must
// already be in normalized form (lowercase ASCII letters, digits, single
// spaces) or they could never match normalized text.
func NewLexicon(entries []Entry) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, errors.New("lexicon: at least one keyword required")
	}
	lex := &Lexicon{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]float64, len(entries)),
	}
	for _, entry := range entries {
		keyword := entry.Keyword
		if strings.TrimSpace(keyword) == "" {
			return nil, errors.New("lexicon: keyword must not be empty")
		}
		if normalized := textutil.Normalize(keyword); normalized != keyword {
			return nil, fmt.Errorf("lexicon: keyword %q is not normalized (want %q)", keyword, normalized)
		}
		if entry.Weight <= 0 || math.IsNaN(entry.Weight) || math.IsInf(entry.Weight, 0) {
			return nil, fmt.Errorf("lexicon: keyword %q must have a positive weight, got %v", keyword, entry.Weight)
		}
		if _, dup := lex.index[keyword]; dup {
			return nil, fmt.Errorf("lexicon: duplicate keyword %q", keyword)
		}
		lex.index[keyword] = entry.Weight
		lex.entries = append(lex.entries, entry)
	}
	return lex, nil
}

type lexiconFile struct {
	Keywords map[string]float64 `toml:"keywords"`
}

// LoadLexicon reads a TOML file with a [keywords] table mapping keyword to
// weight. Entries are ordered alphabetically since TOML tables are unordered.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var file lexiconFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	keywords := make([]string, 0, len(file.Keywords))
	for keyword := range file.Keywords {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	entries := make([]Entry, 0, len(keywords))
	for _, keyword := range keywords {
		entries = append(entries, Entry{Keyword: keyword, Weight: file.Keywords[keyword]})
	}
	lex, err := NewLexicon(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// Entries returns a copy of the lexicon in its construction order.
func (l *Lexicon) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Lexicon) weight(keyword string) (float64, bool) {
	if l == nil {
		return 0, false
	}
	w, ok := l.index[keyword]
	return w, ok
}

// Len reports the number of keywords.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
