package db

import "testing"

func TestURLHash(t *testing.T) {
	// SHA-256 of the exact URL string, hex-encoded.
	got := URLHash("https://example.com/p/1")
	want := "82d64c27caf111110e779974e9f4a21011d843b759c267024012d239163c04b4"
	if got != want {
		t.Errorf("URLHash mismatch: got %s", got)
	}
	if URLHash("https://example.com/p/1") != got {
		t.Error("hash must be stable")
	}
	if URLHash("https://example.com/p/2") == got {
		t.Error("distinct URLs must not collide")
	}
}
