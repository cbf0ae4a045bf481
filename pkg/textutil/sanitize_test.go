package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("strips control bytes", func(t *testing.T) {
		assert.Equal(t, "hello world", Sanitize("hel\x00lo\x01 \x02world"))
	})

	t.Run("collapses and trims whitespace", func(t *testing.T) {
		assert.Equal(t, "a b c", Sanitize("  a\t\tb \n\n c  "))
	})

	t.Run("whitespace only becomes empty", func(t *testing.T) {
		assert.Equal(t, "", Sanitize("   \t\n  "))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", Sanitize(""))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"",
			"   ",
			"plain text",
			"  spaced\x00   out\ttext \n",
			"unicode ñ 漢字\x07 mixed",
		}
		for _, in := range inputs {
			once := Sanitize(in)
			assert.Equal(t, once, Sanitize(once))
		}
	})
}
