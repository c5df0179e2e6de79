// Package textstat implements the readability statistics the comparison
// pipeline reports: sentence segmentation, heuristic syllable counting and
// the Flesch reading ease score.
package textstat

import (
	"strings"
	"unicode"
)

// SplitSentences segments text on terminal punctuation (. ! ?). Runs of
// terminators count once, and text without any terminator is one sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()

	return sentences
}

// SentenceCount returns the number of sentences in the text.
func SentenceCount(text string) int {
	return len(SplitSentences(text))
}

// WordCount returns the number of whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// CountSyllables estimates syllables in a word by counting vowel groups,
// discounting a silent trailing 'e' unless it forms a consonant+"le" ending.
// Every word counts at least one syllable.
func CountSyllables(word string) int {
	var letters []rune
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return 0
	}

	isVowel := func(r rune) bool {
		return strings.ContainsRune("aeiouy", r)
	}

	count := 0
	prevVowel := false
	for _, r := range letters {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent final 'e': "make" is one syllable, but consonant+"le" endings
	// such as "apple" keep theirs.
	n := len(letters)
	if n >= 2 && letters[n-1] == 'e' {
		if !(n >= 3 && letters[n-2] == 'l' && !isVowel(letters[n-3])) && !isVowel(letters[n-2]) {
			count--
		}
	}

	if count < 1 {
		count = 1
	}
	return count
}

// FleschReadingEase computes the Flesch reading ease score:
//
//	206.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
//
// Higher means easier to read. Empty text yields 0.
func FleschReadingEase(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := SentenceCount(text)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	wordCount := float64(len(words))
	return 206.835 - 1.015*(wordCount/float64(sentences)) - 84.6*(float64(syllables)/wordCount)
}

// AvgSentenceLength is the mean number of words per sentence, 0 for empty text.
func AvgSentenceLength(text string) float64 {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return 0
	}

	words := 0
	for _, s := range sentences {
		words += WordCount(s)
	}
	return float64(words) / float64(len(sentences))
}
