package utils

import "testing"

func TestIsMobile(t *testing.T) {
	valid := []string{
		"01712345678",
		"+8801712345678",
		"8801912345678",
		"017-1234-5678",
		"017 1234 5678",
	}
	for _, s := range valid {
		if !IsMobile(s) {
			t.Errorf("IsMobile(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"12345",
		"01012345678",  // operator digit out of range
		"0171234567",   // too short
		"017123456789", // too long
		"abcdefghijk",
	}
	for _, s := range invalid {
		if IsMobile(s) {
			t.Errorf("IsMobile(%q) = true, want false", s)
		}
	}
}

func TestNormalizeGender(t *testing.T) {
	cases := map[string]string{
		"M":       "male",
		"male":    "male",
		" Female": "female",
		"f":       "female",
		"o":       "other",
		"unknown": "",
		"":        "",
	}
	for in, want := range cases {
		if got := NormalizeGender(in); got != want {
			t.Errorf("NormalizeGender(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		150000:   "150,000",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int64
	}{
		{"1500", 1500},
		{"1,500", 1500},
		{" 150,000 ", 150000},
	} {
		got, err := ParseAmount(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseAmount(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Error("ParseAmount(\"abc\") should fail")
	}
	if _, err := ParseAmount(""); err == nil {
		t.Error("ParseAmount(\"\") should fail")
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  a   b \t c "); got != "a b c" {
		t.Errorf("NormalizeSpace = %q", got)
	}
}
