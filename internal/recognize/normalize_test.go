package recognize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"wo#rd!!", "WORD", true},
		{"rock'n'roll", "ROCK'N'ROLL", true},
		{"x-ray", "X-RAY", true},
		{"Bass2", "BASS2", true},
		{"a", "", false},
		{"!!", "", false},
		{"é", "", false},
		{"  ok ", "OK", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeToken(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "WORD 1", Placeholder(0))
	assert.Equal(t, "WORD 16", Placeholder(15))
	assert.True(t, IsPlaceholder("WORD 3", 2))
	assert.False(t, IsPlaceholder("WORD 3", 3))
}

func TestJoinWords(t *testing.T) {
	words := []Word{{Text: "new"}, {Text: "a"}, {Text: "york!"}}
	assert.Equal(t, "NEW YORK", JoinWords(words))

	assert.Equal(t, "ICE CREAM", JoinWords([]Word{{Text: "ice  cream"}}))
	assert.Equal(t, "", JoinWords([]Word{{Text: "?"}}))
	assert.Equal(t, "", JoinWords(nil))
}

func TestFillTokens(t *testing.T) {
	tokens := FillTokens([]string{"APPLE", "", "PEAR"})
	assert.Equal(t, "APPLE", tokens[0])
	assert.Equal(t, "WORD 2", tokens[1])
	assert.Equal(t, "PEAR", tokens[2])
	assert.Equal(t, "WORD 16", tokens[15])

	many := make([]string, 20)
	for i := range many {
		many[i] = "TOK"
	}
	tokens = FillTokens(many)
	for _, tok := range tokens {
		assert.Equal(t, "TOK", tok)
	}
}
