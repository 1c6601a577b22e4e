package utils

import "testing"

func TestNormalizeTimeStr(t *testing.T) {
	cases := map[string]string{
		"08:00":           "08:00",
		"08:00 CET":       "08:00",
		"dep 17:40 sharp": "17:40",
	}
	for in, want := range cases {
		got, err := NormalizeTimeStr(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}

	for _, in := range []string{"", "8am", "25:00", "late"} {
		if _, err := NormalizeTimeStr(in); err == nil {
			t.Fatalf("%q should not normalize", in)
		}
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2024-07-15") {
		t.Fatal("2024-07-15 should be valid")
	}
	for _, in := range []string{"15-07-2024", "2024-07-32", "July 15", ""} {
		if ValidDate(in) {
			t.Fatalf("%q should be invalid", in)
		}
	}
}
