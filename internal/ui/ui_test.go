package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type names []string

func (n names) Completions(prefix string) []string {
	var cs []string

	for _, s := range n {
		if strings.HasPrefix(s, prefix) {
			cs = append(cs, s)
		}
	}

	return cs
}

func (names) Evaluate(string) bool {
	return true
}

func TestCompleterUsesLastWord(t *testing.T) {
	complete := completer(names{"string-append", "string-length", "car"})

	head, cs, tail := complete("(display (string-a", 18)
	assert.Equal(t, "(display (", head)
	assert.Equal(t, []string{"string-append"}, cs)
	assert.Equal(t, "", tail)

	head, cs, tail = complete("(c x)", 2)
	assert.Equal(t, "(", head)
	assert.Equal(t, []string{"car"}, cs)
	assert.Equal(t, " x)", tail)
}

func TestCompleterWithoutWord(t *testing.T) {
	complete := completer(names{"car"})

	head, cs, tail := complete("(car ", 5)
	assert.Equal(t, "(car ", head)
	assert.Empty(t, cs)
	assert.Equal(t, "", tail)
}
