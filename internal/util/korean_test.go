package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKoreanInitials(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"movie genre", "공포영화", "ㄱㅍㅇㅎ"},
		{"single syllable", "밥", "ㅂ"},
		{"double consonant initial", "까치", "ㄲㅊ"},
		{"mixed with latin", "SF소설", "ㅅㅅ"},
		{"mixed with spaces", "공포 영화", "ㄱㅍㅇㅎ"},
		{"latin only", "horror", ""},
		{"digits only", "2024", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KoreanInitials(tt.input))
		})
	}
}

func TestKoreanInitials_DecomposedInput(t *testing.T) {
	// NFD-decomposed jamo sequence for "한" recomposes before extraction.
	decomposed := "\u1112\u1161\u11ab"
	assert.Equal(t, "ㅎ", KoreanInitials(decomposed))
}

func TestIsChoseong(t *testing.T) {
	assert.True(t, IsChoseong("ㄱㅍ"))
	assert.True(t, IsChoseong("ㄲ"))
	assert.False(t, IsChoseong("공포"))
	assert.False(t, IsChoseong("ㄱ포"))
	assert.False(t, IsChoseong("gp"))
	assert.False(t, IsChoseong(""))
	// Medial vowels are jamo but not initials.
	assert.False(t, IsChoseong("ㅏ"))
}

func TestContainsHangul(t *testing.T) {
	assert.True(t, ContainsHangul("영화"))
	assert.True(t, ContainsHangul("ㄱㅍ"))
	assert.True(t, ContainsHangul("mixed 한글"))
	assert.False(t, ContainsHangul("latin only"))
	assert.False(t, ContainsHangul(""))
}

func TestStripWhitespace(t *testing.T) {
	assert.Equal(t, "공포영화", StripWhitespace("공포 영화"))
	assert.Equal(t, "abc", StripWhitespace(" a b\tc\n"))
	assert.Equal(t, "", StripWhitespace("   "))
}
