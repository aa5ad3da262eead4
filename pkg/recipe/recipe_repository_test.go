package recipe

import (
	"context"
	"testing"

	"Go-Recipe-Hub/entities"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFindMediaByURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	image := newMedia(fakeBaseURL+"/a.png", false)
	video := newMedia(fakeBaseURL+"/b.mp4", true)
	require.NoError(t, env.repo.CreateMedia(ctx, image))
	require.NoError(t, env.repo.CreateMedia(ctx, video))

	found, err := env.repo.FindMediaByURL(ctx, fakeBaseURL+"/a.png")
	require.NoError(t, err)
	require.Equal(t, image.ID, found.ID)

	found, err = env.repo.FindMediaByURL(ctx, fakeBaseURL+"/b.mp4")
	require.NoError(t, err)
	require.Equal(t, video.ID, found.ID)

	_, err = env.repo.FindMediaByURL(ctx, fakeBaseURL+"/missing.png")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteMedia(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	keep := newMedia(fakeBaseURL+"/keep.png", false)
	drop := newMedia(fakeBaseURL+"/drop.png", false)
	require.NoError(t, env.repo.CreateMedia(ctx, keep))
	require.NoError(t, env.repo.CreateMedia(ctx, drop))

	require.NoError(t, env.repo.DeleteMedia(ctx, nil))
	require.NoError(t, env.repo.DeleteMedia(ctx, []uint{drop.ID}))

	var rows []entities.Media
	require.NoError(t, env.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, keep.ID, rows[0].ID)
}
