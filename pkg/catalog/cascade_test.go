package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

var sedeOptions = []sia.DropdownOption{
	{Value: "1101", Label: "1101 SEDE BOGOTÁ"},
	{Value: "1102", Label: "1102 SEDE MEDELLÍN"},
	{Value: "1103", Label: "1103 SEDE MANIZALES"},
}

func TestMatchOptionStripsDiacritics(t *testing.T) {
	match, err := matchOption(sedeOptions, "medellin")
	require.NoError(t, err)
	assert.Equal(t, "1102", match.Value)
}

func TestMatchOptionIsCaseInsensitive(t *testing.T) {
	match, err := matchOption(sedeOptions, "MEDELLÍN")
	require.NoError(t, err)
	assert.Equal(t, "1102", match.Value)
}

func TestMatchOptionSubstring(t *testing.T) {
	faculties := []sia.DropdownOption{
		{Value: "3064", Label: "3064 FACULTAD DE CIENCIAS"},
		{Value: "3068", Label: "3068 FACULTAD DE MINAS"},
	}
	match, err := matchOption(faculties, "minas")
	require.NoError(t, err)
	assert.Equal(t, "3068", match.Value)
}

func TestMatchOptionFirstMatchWins(t *testing.T) {
	match, err := matchOption(sedeOptions, "sede")
	require.NoError(t, err)
	assert.Equal(t, "1101", match.Value)
}

func TestMatchOptionNotFoundCarriesAvailable(t *testing.T) {
	_, err := matchOption(sedeOptions, "amazonia")
	var notFound *sia.OptionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "amazonia", notFound.Label)
	assert.Len(t, notFound.Available, 3)
	assert.Contains(t, notFound.Error(), "1101 SEDE BOGOTÁ")
}

func TestMatchOptionEmptyOptions(t *testing.T) {
	_, err := matchOption(nil, "medellin")
	var notFound *sia.OptionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, notFound.Available)
}
