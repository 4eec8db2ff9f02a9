package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

func TestMusicCmd_Use(t *testing.T) {
	assert.Equal(t, "music [query]", musicCmd.Use)
}

func TestMusicCmd_HasLimitFlag(t *testing.T) {
	flag := musicCmd.Flags().Lookup("limit")
	assert.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestMusicCmd_ListsTracks(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("music", "кино")

	assert.NoError(t, err)
	assert.Contains(t, out, "Кино — Группа крови (Группа крови)")
}

func TestMusicCmd_JoinsArtists(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	musicCatalog = &stubMusic{tracks: []domain.Track{
		{Title: "Дуэт", Artists: []string{"Первый", "Второй"}},
	}}

	out, err := executeCommand("music", "дуэт")

	assert.NoError(t, err)
	assert.Contains(t, out, "Первый, Второй — Дуэт")
}

func TestMusicCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	musicCatalog = &stubMusic{}

	out, err := executeCommand("music", "тишина")

	assert.NoError(t, err)
	assert.Contains(t, out, "No tracks found")
}

func TestMusicCmd_SearchError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	musicCatalog = &stubMusic{err: errors.New("token expired")}

	_, err := executeCommand("music", "кино")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "music search failed")
}

func TestMusicCmd_ErrorsWithoutService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	musicCatalog = nil

	_, err := executeCommand("music", "кино")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
