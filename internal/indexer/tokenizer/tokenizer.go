// Package tokenizer turns raw whitespace-delimited words into index
// keywords. A keyword is a lower-cased word with its trailing punctuation
// stripped that consists only of ASCII letters and is not a stop word.
package tokenizer

import (
	"iter"
	"strings"
)

// punctuation lists the only characters stripped from the end of a word.
const punctuation = ".,?:;!"

// StopWords is the set of words excluded from indexing. It is filled once
// before any document is scanned and only read afterwards.
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords builds a set from the given words, lower-casing each one.
// Blank entries are ignored.
func NewStopWords(words ...string) *StopWords {
	sw := &StopWords{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		sw.add(w)
	}
	return sw
}

// NewStopWordsFrom drains a word sequence into a new set.
func NewStopWordsFrom(words iter.Seq[string]) *StopWords {
	sw := &StopWords{words: make(map[string]struct{})}
	for w := range words {
		sw.add(w)
	}
	return sw
}

func (sw *StopWords) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	sw.words[word] = struct{}{}
}

// Contains reports whether word is a stop word. A nil set contains nothing.
func (sw *StopWords) Contains(word string) bool {
	if sw == nil {
		return false
	}
	_, ok := sw.words[word]
	return ok
}

// Len returns the number of distinct stop words.
func (sw *StopWords) Len() int {
	if sw == nil {
		return 0
	}
	return len(sw.words)
}

// Normalize returns the keyword for token and true, or "" and false when the
// token is rejected. Only trailing punctuation is stripped; punctuation
// anywhere else, digits, or non-ASCII letters reject the token outright.
func (sw *StopWords) Normalize(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	word := strings.TrimRight(lowerASCII(token), punctuation)
	if word == "" {
		return "", false
	}
	if sw.Contains(word) {
		return "", false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return "", false
		}
	}
	return word, true
}

// lowerASCII lower-cases A-Z only. Non-ASCII bytes are left as they are so
// that the letter check rejects them.
func lowerASCII(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c + ('a' - 'A')
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// Words splits text on whitespace. The returned sequence can be ranged over
// any number of times.
func Words(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range strings.Fields(text) {
			if !yield(w) {
				return
			}
		}
	}
}
