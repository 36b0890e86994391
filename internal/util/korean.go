// Package util provides small text helpers shared across services.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Precomposed Hangul syllables occupy U+AC00..U+D7A3. Each syllable
// decomposes as ((initial*21)+medial)*28+final, so the initial consonant
// index is (r-0xAC00)/588.
const (
	hangulBase = 0xAC00
	hangulEnd  = 0xD7A3
	// 21 medials * 28 finals
	initialSpan = 588
)

// choseong lists the 19 initial consonants in decomposition order.
var choseong = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// KoreanInitials returns the choseong skeleton of s: the initial consonant
// of every Hangul syllable, in order, with all other runes dropped.
// Returns "" when s contains no Hangul syllables.
//
// Example: "공포영화" -> "ㄱㅍㅇㅎ".
func KoreanInitials(s string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(s) {
		if r >= hangulBase && r <= hangulEnd {
			b.WriteRune(choseong[(r-hangulBase)/initialSpan])
		}
	}
	return b.String()
}

// IsChoseong reports whether s is non-empty and consists only of initial
// consonant jamo, i.e. a query typed as bare initials like "ㄱㅍ".
func IsChoseong(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isInitialJamo(r) {
			return false
		}
	}
	return true
}

func isInitialJamo(r rune) bool {
	for _, c := range choseong {
		if r == c {
			return true
		}
	}
	return false
}

// ContainsHangul reports whether s contains any Hangul syllable or jamo.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// StripWhitespace removes all whitespace runes from s.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
