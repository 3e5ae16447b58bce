package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation collapses", "Hello, World!", "hello-world"},
		{"already lowercase", "hello", "hello"},
		{"numbers kept", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
		{"leading and trailing junk", "  --Hello--  ", "hello"},
		{"runs collapse to one hyphen", "a   &   b", "a-b"},
		{"unicode stripped", "Café résumé", "caf-r-sum"},
		{"empty", "", ""},
		{"only junk", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}
