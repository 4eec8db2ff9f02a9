package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golos-labs/golos-cli/internal/core/domain"
)

func seedNotes(t *testing.T) *NoteStore {
	t.Helper()
	store := NewNoteStore()
	ctx := context.Background()

	base := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	for i, n := range []domain.Note{
		{ID: "1", Title: "Список покупок", Content: "молоко, хлеб"},
		{ID: "2", Title: "Идеи", Content: "купить подарок маме"},
		{ID: "3", Title: "Работа", Content: "созвон в пятницу"},
	} {
		n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Save(ctx, n))
	}
	return store
}

func TestNoteStore_List_NewestFirst(t *testing.T) {
	store := seedNotes(t)

	notes, err := store.List(context.Background())

	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "Работа", notes[0].Title)
	assert.Equal(t, "Список покупок", notes[2].Title)
}

func TestNoteStore_Search_TitleAndContent(t *testing.T) {
	store := seedNotes(t)
	ctx := context.Background()

	byTitle, err := store.Search(ctx, "идеи")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "2", byTitle[0].ID)

	byContent, err := store.Search(ctx, "молоко")
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, "1", byContent[0].ID)
}

func TestNoteStore_Search_CaseInsensitive(t *testing.T) {
	store := seedNotes(t)

	notes, err := store.Search(context.Background(), "РАБОТА")

	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestNoteStore_Search_NoMatches(t *testing.T) {
	store := seedNotes(t)

	notes, err := store.Search(context.Background(), "несуществующее")

	require.NoError(t, err)
	assert.Empty(t, notes)
}
