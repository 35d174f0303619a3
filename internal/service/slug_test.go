package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":              "hello-world",
		"Go 1.22: What's New?":     "go-122-whats-new",
		"  Leading spaces":         "--leading-spaces",
		"Ünïcode Tïtle":            "ncode-ttle",
		"already-slugged-title-42": "already-slugged-title-42",
	}
	for title, want := range cases {
		if got := Slugify(title); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", title, got, want)
		}
	}
}
