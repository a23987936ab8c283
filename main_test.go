package main

import "testing"

func TestParseURLFile(t *testing.T) {
	content := `# batch from 2024-03 lookbook
https://example.com/p/1

https://example.com/p/2
  # indented comment
https://example.com/p/3
`

	urls := parseURLFile(content)
	want := []string{
		"https://example.com/p/1",
		"https://example.com/p/2",
		"https://example.com/p/3",
	}
	if len(urls) != len(want) {
		t.Fatalf("expected %d URLs, got %v", len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], urls[i])
		}
	}
}

func TestParseURLFileEmpty(t *testing.T) {
	if urls := parseURLFile("# only comments\n\n"); len(urls) != 0 {
		t.Errorf("expected no URLs, got %v", urls)
	}
}
