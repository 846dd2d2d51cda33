package util

import "testing"

func TestStripDiacritics(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Déjà Vu", "Deja Vu"},
		{"Björk", "Bjork"},
		{"Sigur Rós", "Sigur Ros"},
		{"Abbey Road", "Abbey Road"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := StripDiacritics(tc.in); got != tc.want {
			t.Fatalf("StripDiacritics(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHasDiacritics(t *testing.T) {
	if !HasDiacritics("Déjà Vu") {
		t.Fatalf("expected diacritics to be detected")
	}
	if HasDiacritics("Deja Vu") {
		t.Fatalf("expected plain string to have no diacritics")
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("abcdef", 4); got != "abcd..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateString("한글테스트", 10); got != "한글테스트" {
		t.Fatalf("short string must be unchanged: %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Abbey Road "); got != "abbey road" {
		t.Fatalf("unexpected normalize result: %q", got)
	}
}
