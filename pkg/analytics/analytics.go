// Package analytics provides tokenization, stopword filtering and the
// per-document lexical statistics the comparison pipeline is built on.
package analytics

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// commonWords is the built-in stopword set excluded from frequency analysis.
// An additional user-supplied set can be layered on top via LoadStopwords.
var commonWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "across": {}, "after": {}, "afterwards": {},
	"again": {}, "against": {}, "all": {}, "almost": {}, "alone": {}, "along": {},
	"already": {}, "also": {}, "although": {}, "always": {}, "am": {}, "among": {},
	"amongst": {}, "amount": {}, "an": {}, "and": {}, "another": {}, "any": {},
	"anyhow": {}, "anyone": {}, "anything": {}, "anyway": {}, "anywhere": {},
	"are": {}, "aren't": {}, "around": {}, "as": {}, "at": {},

	"back": {}, "be": {}, "became": {}, "because": {}, "become": {}, "becomes": {},
	"becoming": {}, "been": {}, "before": {}, "beforehand": {}, "behind": {},
	"being": {}, "below": {}, "beside": {}, "besides": {}, "between": {},
	"beyond": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "can't": {}, "cannot": {}, "could": {}, "couldn't": {},

	"did": {}, "didn't": {}, "do": {}, "does": {}, "doesn't": {}, "doing": {},
	"don't": {}, "done": {}, "down": {}, "during": {},

	"each": {}, "either": {}, "else": {}, "elsewhere": {}, "enough": {},
	"entirely": {}, "especially": {}, "etc": {}, "even": {}, "ever": {},
	"every": {}, "everyone": {}, "everything": {}, "everywhere": {},

	"few": {}, "for": {}, "former": {}, "formerly": {}, "from": {},
	"further": {},

	"had": {}, "hadn't": {}, "has": {}, "hasn't": {}, "have": {}, "haven't": {},
	"having": {}, "he": {}, "he'd": {}, "he'll": {}, "he's": {}, "hence": {},
	"her": {}, "here": {}, "hereafter": {}, "hereby": {}, "herein": {},
	"here's": {}, "hereupon": {}, "hers": {}, "herself": {}, "him": {},
	"himself": {}, "his": {}, "how": {}, "however": {},

	"i": {}, "i'd": {}, "i'll": {}, "i'm": {}, "i've": {},
	"if": {}, "in": {}, "indeed": {}, "into": {}, "is": {}, "isn't": {},
	"it": {}, "it's": {}, "its": {}, "itself": {},

	"just": {},

	"keep": {},

	"last": {}, "latter": {}, "latterly": {}, "least": {}, "less": {},
	"let": {}, "let's": {}, "like": {}, "likely": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "maybe": {}, "me": {},
	"meanwhile": {}, "might": {}, "mine": {}, "more": {}, "moreover": {},
	"most": {}, "mostly": {}, "much": {}, "must": {}, "mustn't": {},
	"my": {}, "myself": {},

	"neither": {}, "never": {}, "nevertheless": {}, "next": {}, "no": {},
	"nobody": {}, "none": {}, "noone": {}, "nor": {}, "not": {},
	"nothing": {}, "now": {}, "nowhere": {},

	"of": {}, "off": {}, "often": {}, "on": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "or": {}, "other": {}, "others": {},
	"otherwise": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {},

	"part": {}, "per": {}, "perhaps": {}, "please": {}, "put": {},

	"rather": {}, "re": {}, "same": {}, "see": {}, "seem": {}, "seemed": {},
	"seeming": {}, "seems": {}, "several": {}, "she": {}, "she'd": {},
	"she'll": {}, "she's": {}, "should": {}, "shouldn't": {}, "since": {},
	"so": {}, "some": {}, "somehow": {}, "someone": {}, "something": {},
	"sometime": {}, "sometimes": {}, "somewhere": {}, "still": {},
	"such": {},

	"take": {}, "than": {}, "that": {}, "that's": {}, "the": {},
	"their": {}, "theirs": {}, "them": {}, "themselves": {}, "then": {},
	"thence": {}, "there": {}, "thereafter": {}, "thereby": {},
	"therefore": {}, "therein": {}, "there's": {}, "thereupon": {},
	"these": {}, "they": {}, "they'd": {}, "they'll": {}, "they're": {},
	"they've": {}, "this": {}, "those": {}, "through": {}, "throughout": {},
	"thru": {}, "thus": {}, "to": {}, "together": {}, "too": {},
	"toward": {}, "towards": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},

	"very": {}, "via": {},

	"was": {}, "wasn't": {}, "we": {}, "we'd": {}, "we'll": {},
	"we're": {}, "we've": {}, "well": {}, "were": {}, "weren't": {},
	"what": {}, "whatever": {}, "what's": {}, "when": {}, "whence": {},
	"whenever": {}, "where": {}, "whereafter": {}, "whereas": {},
	"whereby": {}, "wherein": {}, "where's": {}, "whereupon": {},
	"wherever": {}, "whether": {}, "which": {}, "while": {}, "whither": {},
	"who": {}, "who'd": {}, "whoever": {}, "who'll": {}, "who's": {},
	"whose": {}, "why": {}, "with": {}, "within": {}, "without": {},
	"won't": {}, "would": {}, "wouldn't": {},

	"yet": {}, "you": {}, "you'd": {}, "you'll": {}, "you're": {},
	"you've": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},

	// Additional contractions and variants
	"ain't": {}, "it'll": {}, "shan't": {}, "that'll": {}, "when's": {},

	// Catalog boilerplate that appears in nearly every course entry and
	// drowns out the words that actually distinguish departments.
	"course": {}, "courses": {}, "credit": {}, "credits": {},
	"hour": {}, "hours": {}, "unit": {}, "units": {},
	"prerequisite": {}, "prerequisites": {}, "corequisite": {},
	"semester": {}, "quarter": {}, "term": {},
	"offered": {}, "instructor": {}, "permission": {},
	"grading": {}, "graded": {}, "syllabus": {},
}

// Analytics tokenizes text and computes lexical statistics. The zero value is
// ready to use with the built-in stopword set.
type Analytics struct {
	extra map[string]struct{}
}

func New() *Analytics {
	return &Analytics{extra: make(map[string]struct{})}
}

// LoadStopwords layers a user-supplied stopword file (one word per line,
// case-insensitive, blank lines and #-comments ignored) on the built-in set.
func (a *Analytics) LoadStopwords(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open stopword file: %w", err)
	}
	defer f.Close()

	if a.extra == nil {
		a.extra = make(map[string]struct{})
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		a.extra[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stopword file: %w", err)
	}

	return nil
}

// IsStopword checks if a word is filtered out of frequency analysis.
func (a *Analytics) IsStopword(word string) bool {
	word = strings.ToLower(word)
	if _, exists := commonWords[word]; exists {
		return true
	}
	_, exists := a.extra[word]
	return exists
}

// Tokenize lowercases the text, splits on whitespace and trims surrounding
// punctuation from each token. Stopwords are kept; callers filter as needed.
func (a *Analytics) Tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			// Keep only lowercase letters and numbers
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})
		if word == "" {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// WordFrequency returns the frequency map of non-stopword tokens.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range a.Tokenize(text) {
		if a.IsStopword(word) {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

// TypeTokenRatio is unique tokens over total tokens, the lexical-richness
// measure compared across departments. Stopwords count like any other token.
// Empty text yields 0.
func (a *Analytics) TypeTokenRatio(text string) float64 {
	tokens := a.Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		seen[t] = struct{}{}
	}

	return float64(len(seen)) / float64(len(tokens))
}

// AvgWordLength is the mean rune length of non-stopword tokens, 0 for empty
// or all-stopword text.
func (a *Analytics) AvgWordLength(text string) float64 {
	var total, count int
	for _, word := range a.Tokenize(text) {
		if a.IsStopword(word) {
			continue
		}
		total += len([]rune(word))
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

type wordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent non-stopword tokens, ties broken
// alphabetically so output is stable across runs.
func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}
