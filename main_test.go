package main

import "testing"

func TestLocalURL(t *testing.T) {
	tests := map[string]string{
		":8501":          "http://localhost:8501",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
	}
	for in, want := range tests {
		if got := localURL(in); got != want {
			t.Errorf("localURL(%q) = %q, want %q", in, got, want)
		}
	}
}
