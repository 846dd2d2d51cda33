package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TruncateString: 주어진 문자열을 최대 길이(Rune 기준)로 자르고, 초과 시 "..."을 붙여 반환한다.
func TruncateString(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "..."
}

// TrimSpace: 문자열 양쪽 끝의 공백을 제거한다. (strings.TrimSpace 래퍼)
func TrimSpace(s string) string {
	return strings.TrimSpace(s)
}

// Normalize: 문자열을 소문자로 변환하고 양쪽 공백을 제거한다.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics: 발음 구별 기호(diacritics)를 제거한 형태를 반환한다.
// 예: "Déjà Vu" -> "Deja Vu". 변환 실패 시 원본을 그대로 반환한다.
func StripDiacritics(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return stripped
}

// HasDiacritics: 문자열에 발음 구별 기호가 포함되어 있는지 확인한다.
func HasDiacritics(s string) bool {
	return StripDiacritics(s) != s
}
