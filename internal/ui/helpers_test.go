package ui

import "testing"

func TestTruncate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		max   int
		want  string
	}{
		{"fits", "go study", 10, "go study"},
		{"exact", "go", 2, "go"},
		{"cut", "golang study group", 8, "golang …"},
		{"multibyte", "고랭 스터디 모임", 5, "고랭 스…"},
		{"one", "golang", 1, "…"},
		{"zero", "golang", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.value, tc.max); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.value, tc.max, got, tc.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	if got := firstLine("one\ntwo\nthree"); got != "one" {
		t.Fatalf("firstLine = %q, want one", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Fatalf("firstLine = %q, want single", got)
	}
}

func TestClampSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		selected, length, want int
	}{
		{0, 0, 0},
		{-1, 5, 0},
		{5, 5, 4},
		{2, 5, 2},
		{3, 1, 0},
	}
	for _, tc := range cases {
		if got := clampSelection(tc.selected, tc.length); got != tc.want {
			t.Fatalf("clampSelection(%d, %d) = %d, want %d", tc.selected, tc.length, got, tc.want)
		}
	}
}

func TestFormatTimestamp_PassesThroughUnparsable(t *testing.T) {
	t.Parallel()

	if got := formatTimestamp("not-a-time"); got != "not-a-time" {
		t.Fatalf("formatTimestamp = %q, want the raw value", got)
	}
	if got := formatTimestamp(""); got != "" {
		t.Fatalf("formatTimestamp = %q, want empty", got)
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	t.Parallel()

	fallback := GetTheme("no-such-theme")
	if fallback.Name != GetTheme("").Name {
		t.Fatalf("fallback theme = %q, want the default", fallback.Name)
	}
}
