package recipe

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/internal/testutil"
	"Go-Recipe-Hub/internal/utils"

	"github.com/stretchr/testify/require"
)

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Messages
}

func TestValidateRecipeInput(t *testing.T) {
	utils.InitValidator()

	t.Run("valid input", func(t *testing.T) {
		require.NoError(t, validateRecipeInput(utils.Validate, validInput(), nil, ruleNone))
	})

	t.Run("level ignores case", func(t *testing.T) {
		in := validInput()
		in.Level = "TRUNG BÌNH"
		require.NoError(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
	})

	t.Run("english level is rejected", func(t *testing.T) {
		in := validInput()
		in.Level = "easy"
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
		require.Equal(t, []string{msgLevelInvalid}, msgs)
	})

	t.Run("collects every violation", func(t *testing.T) {
		in := domain.RecipeInput{
			Name:        "   ",
			CookTime:    0,
			Level:       "Siêu khó",
			Ingredients: []string{" ", ""},
		}
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
		require.ElementsMatch(t, []string{
			msgNameRequired,
			msgCookTimeRange,
			msgLevelInvalid,
			msgNoIngredient,
			msgNoType,
			msgNoStep,
		}, msgs)
	})

	t.Run("long name and description", func(t *testing.T) {
		in := validInput()
		in.Name = strings.Repeat("á", 256)
		in.Description = strings.Repeat("x", 5001)
		in.CookTime = 1441
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
		require.ElementsMatch(t, []string{msgNameTooLong, msgDescriptionTooLong, msgCookTimeRange}, msgs)
	})

	t.Run("name of 255 runes is accepted", func(t *testing.T) {
		in := validInput()
		in.Name = strings.Repeat("á", 255)
		require.NoError(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
	})

	t.Run("blank step is numbered", func(t *testing.T) {
		in := validInput(domain.StepInput{Description: "Rửa rau"}, domain.StepInput{Description: "  "})
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
		require.Equal(t, []string{"Bước 2: nội dung không được để trống"}, msgs)
	})

	t.Run("oversized step media", func(t *testing.T) {
		big := testutil.Image(t, "big.png")
		big.Size = domain.MaxStepMediaSize + 1
		in := validInput(domain.StepInput{Description: "Nướng", Media: []*multipart.FileHeader{big}})
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
		require.Equal(t, []string{`Bước 1: tệp "big.png" vượt quá 50MB`}, msgs)
	})

	t.Run("step media of 30MB is accepted", func(t *testing.T) {
		file := testutil.Video(t, "clip.mp4")
		file.Size = 30 << 20
		in := validInput(domain.StepInput{Description: "Nướng", Media: []*multipart.FileHeader{file}})
		require.NoError(t, validateRecipeInput(utils.Validate, in, nil, ruleNone))
	})

	t.Run("small bmp thumbnail fails on format only", func(t *testing.T) {
		thumb := testutil.FileHeader(t, "cover.bmp", bytes.Repeat([]byte{1}, 16))
		thumb.Size = 5 << 20
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, validInput(), thumb, ruleThumbnail))
		require.Equal(t, []string{msgThumbnailFormat}, msgs)
	})

	t.Run("thumbnail extension and size", func(t *testing.T) {
		thumb := testutil.FileHeader(t, "cover.bmp", bytes.Repeat([]byte{1}, 16))
		thumb.Size = domain.MaxThumbnailSize + 1
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, validInput(), thumb, ruleThumbnail))
		require.ElementsMatch(t, []string{msgThumbnailTooLarge, msgThumbnailFormat}, msgs)
	})

	t.Run("thumbnail content must be an image", func(t *testing.T) {
		thumb := testutil.FileHeader(t, "cover.jpg", testutil.MP4Bytes)
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, validInput(), thumb, ruleThumbnail))
		require.Equal(t, []string{msgThumbnailContent}, msgs)
	})

	t.Run("main media content must be image or video", func(t *testing.T) {
		main := testutil.FileHeader(t, "intro.png", []byte("plain text body"))
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, validInput(), main, ruleMainMedia))
		require.Equal(t, []string{msgMainMediaFormat}, msgs)
	})

	t.Run("thumbnail extension ignores case", func(t *testing.T) {
		thumb := testutil.Image(t, "COVER.PNG")
		require.NoError(t, validateRecipeInput(utils.Validate, validInput(), thumb, ruleThumbnail))
	})

	t.Run("main media allows video up to 50MB", func(t *testing.T) {
		main := testutil.Video(t, "intro.mp4")
		require.NoError(t, validateRecipeInput(utils.Validate, validInput(), main, ruleMainMedia))

		main.Size = domain.MaxStepMediaSize + 1
		msgs := validationMessages(t, validateRecipeInput(utils.Validate, validInput(), main, ruleMainMedia))
		require.Equal(t, []string{msgMainMediaTooLarge}, msgs)
	})
}

func TestStepFilesPrefersMultiFileField(t *testing.T) {
	multi := testutil.Image(t, "a.png")
	legacy := testutil.Image(t, "legacy.png")

	require.Equal(t, []*multipart.FileHeader{multi}, stepFiles(domain.StepInput{Media: []*multipart.FileHeader{multi}, LegacyMedia: legacy}))
	require.Equal(t, []*multipart.FileHeader{legacy}, stepFiles(domain.StepInput{LegacyMedia: legacy}))
	require.Empty(t, stepFiles(domain.StepInput{Media: []*multipart.FileHeader{nil}}))
}

func TestCanonicalLevelAndStepCount(t *testing.T) {
	require.Equal(t, domain.LevelEasy, canonicalLevel(" dễ "))
	require.Equal(t, domain.LevelHard, canonicalLevel("KHÓ"))
	require.Equal(t, 1, stepCount(0))
	require.Equal(t, 4, stepCount(4))
}
