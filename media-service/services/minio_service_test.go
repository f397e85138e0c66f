package services

import (
	"strings"
	"testing"
)

func TestValidFolderName(t *testing.T) {
	tests := []struct {
		folder string
		want   bool
	}{
		{"decks", true},
		{"company/photos", true},
		{"endorsements/audio", true},
		{"showcase_docs", true},
		{"a-b-c/d_e", true},
		{"1decks", true},
		{"", false},
		{"Decks", false},
		{"/decks", false},
		{"-decks", false},
		{"decks/../secrets", false},
		{"decks with spaces", false},
		{"decks!", false},
		{strings.Repeat("a", 101), false},
		{strings.Repeat("a", 100), true},
	}

	for _, tt := range tests {
		if got := ValidFolderName(tt.folder); got != tt.want {
			t.Errorf("ValidFolderName(%q) = %v, want %v", tt.folder, got, tt.want)
		}
	}
}
