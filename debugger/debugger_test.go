package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExamineFormat(t *testing.T) {
	count, kind, err := parseExamineFormat("4x")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, byte('x'), kind)
}

func TestParseExamineFormatDefaults(t *testing.T) {
	count, kind, err := parseExamineFormat("")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, byte('x'), kind)
}

func TestParseExamineFormatRejectsUnknownKind(t *testing.T) {
	_, _, err := parseExamineFormat("3z")
	assert.Error(t, err)
}

func TestCommandsResolveByUnambiguousPrefix(t *testing.T) {
	fn, err := commands.Find("st")
	require.NoError(t, err)
	assert.NotNil(t, fn)

	fn, err = commands.Find("q")
	require.NoError(t, err)
	assert.NotNil(t, fn)
}
