package textutil

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  brown   sugar ", "brown sugar"},
		{"\tflour\n", "flour"},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFoldUnifiesCase(t *testing.T) {
	variants := []string{"Sugar", "sugar", "SUGAR", "  sUgAr "}
	want := Fold(variants[0])
	for _, v := range variants[1:] {
		if got := Fold(v); got != want {
			t.Fatalf("Fold(%q) = %q, want %q", v, got, want)
		}
	}
	if Fold("Crème Fraîche") != Fold("CRÈME FRAÎCHE") {
		t.Fatal("expected non-ASCII names to fold to the same value")
	}
}

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := EscapeLike(tc.in); got != tc.want {
			t.Fatalf("EscapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := ContainsPattern("50%"); got != `%50\%%` {
		t.Fatalf("ContainsPattern = %q", got)
	}
}

func TestContainsWord(t *testing.T) {
	cases := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{"2 cups brown sugar", "sugar", true},
		{"2 cups brown sugar", "brown sugar", true},
		{"sugarcane syrup", "sugar", false},
		{"butter, softened", "butter", true},
		{"peanut butter", "butter", true},
		{"buttermilk", "butter", false},
		{"salt", "", false},
	}
	for _, tc := range cases {
		if got := ContainsWord(tc.haystack, tc.needle); got != tc.want {
			t.Fatalf("ContainsWord(%q, %q) = %v, want %v", tc.haystack, tc.needle, got, tc.want)
		}
	}
}
