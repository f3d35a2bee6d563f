// Package textnorm cleans up raw recognizer output before it becomes a
// transcript segment. Cleanup is the always-on first stage; Normalizer is the
// optional language-specific second stage. Both stages touch whitespace,
// punctuation and casing, never words.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Bracketed non-speech annotations like [Music] or (applause), also a
	// truncated "[Mus" cut off at the end of a decode.
	bracketRe = regexp.MustCompile(`\[[^\[\]]*\]?|\([^()]*\)?`)

	// Musical glyphs the recognizer emits for singing and background music.
	glyphRe = regexp.MustCompile(`[♪♫♬♩]`)

	spaceRe = regexp.MustCompile(`\s+`)

	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)

	// Digits are excluded so 9.9 and 10:15 stay intact.
	spaceAfterPunct = regexp.MustCompile(`([.,!?;:])([^\s\d])`)
	repeatPunct      = regexp.MustCompile(`([.,!?;:])(?:\s*[.,!?;:])+`)
)

// Cleanup strips non-speech annotations and collapses whitespace. It is
// idempotent: Cleanup(Cleanup(s)) == Cleanup(s).
func Cleanup(s string) string {
	s = bracketRe.ReplaceAllString(s, " ")
	s = glyphRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// DefaultSpecialTokens are recognizer artifacts removed by the Normalizer
// when they appear verbatim or as part of an annotation.
var DefaultSpecialTokens = []string{
	"[BLANK_AUDIO]",
	"[INAUDIBLE]",
	"[ Silence ]",
	"<|endoftext|>",
	"<|nospeech|>",
}

// Normalizer is the optional language-specific stage. It rejects noise,
// removes special tokens, capitalizes the first letter and tidies
// punctuation. The zero value uses DefaultSpecialTokens.
type Normalizer struct {
	// SpecialTokens overrides DefaultSpecialTokens when non-nil.
	SpecialTokens []string
}

// Normalize runs the full language-specific pass. The second return is false
// when the input is classified as noise and should be discarded.
func (n *Normalizer) Normalize(s string) (string, bool) {
	tokens := n.SpecialTokens
	if tokens == nil {
		tokens = DefaultSpecialTokens
	}
	for _, tok := range tokens {
		s = strings.ReplaceAll(s, tok, " ")
	}
	s = Cleanup(s)

	if isNoise(s) {
		return "", false
	}

	s = capitalizeFirst(s)
	s = tidyPunctuation(s)
	return s, true
}

// isNoise reports whether s carries no speech content: empty, no letters at
// all, or a single non-alphanumeric character.
func isNoise(s string) bool {
	if s == "" {
		return true
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return true
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	up := unicode.ToUpper(r)
	if up == r {
		return s
	}
	return string(up) + s[size:]
}

func tidyPunctuation(s string) string {
	s = repeatPunct.ReplaceAllString(s, "$1")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = spaceAfterPunct.ReplaceAllString(s, "$1 $2")
	return strings.TrimSpace(s)
}
