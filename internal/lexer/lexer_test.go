package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyxzen/graphqlite/errors"
)

func TestLexFloatWithExponent(t *testing.T) {
	tokens, err := Lex("2.5e10")
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, FLOAT, tokens[0].Kind)
	assert.Equal(t, "2.5e10", tokens[0].Lexeme)
	assert.Equal(t, EOF, tokens[1].Kind)
}

func TestLexSpread(t *testing.T) {
	tokens, err := Lex("...")
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, SPREAD, tokens[0].Kind)
}

func TestLexLoneDotIsError(t *testing.T) {
	_, err := Lex(".")
	require.NotNil(t, err)
}

func TestLexIntRejectsLeadingZero(t *testing.T) {
	_, err := Lex("012")
	require.NotNil(t, err)
}

func TestLexKeywordsAndNames(t *testing.T) {
	tokens, err := Lex("query true false null fragment on")
	require.Nil(t, err)
	kinds := []Kind{NAME, BOOLEAN, BOOLEAN, NULL, NAME, NAME, EOF}
	require.Len(t, tokens, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, tokens[i].Kind, "token %d", i)
	}
	assert.True(t, tokens[1].BoolValue)
	assert.False(t, tokens[2].BoolValue)
}

func TestLexString(t *testing.T) {
	tokens, err := Lex(`"hello\nworld!"`)
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, STRING, tokens[0].Kind)
	assert.Equal(t, "hello\nworld!", tokens[0].Lexeme)
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex(`"abc`)
	require.NotNil(t, err)
}

func TestLexCommentsAndCommasIgnored(t *testing.T) {
	tokens, err := Lex("{ a, # a comment\n b }")
	require.Nil(t, err)
	kinds := []Kind{LBRACE, NAME, NAME, RBRACE, EOF}
	require.Len(t, tokens, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, tokens[i].Kind, "token %d", i)
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex("a\n  b")
	require.Nil(t, err)
	assert.Equal(t, errors.Location{Line: 1, Column: 1}, tokens[0].Loc)
	assert.Equal(t, errors.Location{Line: 2, Column: 3}, tokens[1].Loc)
}
