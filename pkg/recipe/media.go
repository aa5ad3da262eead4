package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/entities"

	"go.uber.org/zap"
)

func recipeFolder(recipeID uint) string {
	return fmt.Sprintf("recipes/%d", recipeID)
}

func stepFolder(recipeID uint, stepNumber int) string {
	return fmt.Sprintf("recipes/%d/steps/%d", recipeID, stepNumber)
}

// uploadClassified detects the media kind from content and uploads accordingly.
func (s *recipeService) uploadClassified(ctx context.Context, file *multipart.FileHeader, folder string) (string, bool, error) {
	if file == nil {
		return "", false, errMissingFile
	}
	isVideo, err := s.s3.IsVideoFile(file)
	if err != nil {
		return "", false, err
	}
	url, err := s.s3.UploadFile(ctx, file, isVideo, folder)
	if err != nil {
		return "", false, err
	}
	return url, isVideo, nil
}

func newMedia(url string, isVideo bool) *entities.Media {
	u := url
	if isVideo {
		return &entities.Media{VideoURL: &u}
	}
	return &entities.Media{ImageURL: &u}
}

// uploadedMedia records the media rows and blobs created during one write.
type uploadedMedia struct {
	ids  []uint
	urls []string
}

func (u *uploadedMedia) add(id uint, url string) {
	u.ids = append(u.ids, id)
	u.urls = append(u.urls, url)
}

// discardMedia unlinks the recipe's step media and removes every row and blob in uploaded.
// Blobs are removed even when the row delete fails.
func (s *recipeService) discardMedia(ctx context.Context, recipeID uint, uploaded *uploadedMedia) error {
	if len(uploaded.ids) == 0 {
		return nil
	}
	var errs []error
	errs = append(errs, s.recipeRepository.DeleteAllStepMedia(ctx, recipeID))
	errs = append(errs, s.recipeRepository.DeleteMedia(ctx, uploaded.ids))
	for _, url := range uploaded.urls {
		s.deleteBlob(ctx, url)
	}
	return errors.Join(errs...)
}

// attachStepMedia uploads and links files to a step with display orders next, next+1, ...
// A failing file is logged and skipped. It returns the next free display order.
func (s *recipeService) attachStepMedia(
	ctx context.Context,
	recipeID uint,
	stepNumber int,
	files []*multipart.FileHeader,
	next int,
	uploaded *uploadedMedia,
	skipped *[]string,
) int {
	for _, file := range files {
		if err := s.attachOne(ctx, recipeID, stepNumber, file, next, uploaded); err != nil {
			name := ""
			if file != nil {
				name = file.Filename
			}
			s.logger.Warn("step media skipped",
				zap.Uint("recipe_id", recipeID),
				zap.Int("step_number", stepNumber),
				zap.String("file", name),
				zap.NamedError("kind", domain.ErrPartialMediaFailure),
				zap.Error(err),
			)
			*skipped = append(*skipped, fmt.Sprintf("step %d: %s", stepNumber, name))
			continue
		}
		next++
	}
	return next
}

func (s *recipeService) attachOne(
	ctx context.Context,
	recipeID uint,
	stepNumber int,
	file *multipart.FileHeader,
	order int,
	uploaded *uploadedMedia,
) error {
	url, isVideo, err := s.uploadClassified(ctx, file, stepFolder(recipeID, stepNumber))
	if err != nil {
		return err
	}

	media := newMedia(url, isVideo)
	if err := s.recipeRepository.CreateMedia(ctx, media); err != nil {
		s.deleteBlob(ctx, url)
		return err
	}

	if err := s.recipeRepository.AddStepMedia(ctx, &entities.RecipeStepMedia{
		RecipeID:     recipeID,
		StepNumber:   stepNumber,
		MediaID:      media.ID,
		DisplayOrder: order,
	}); err != nil {
		if derr := s.recipeRepository.DeleteMedia(ctx, []uint{media.ID}); derr != nil {
			s.logger.Warn("media row cleanup failed", zap.Uint("media_id", media.ID), zap.Error(derr))
		}
		s.deleteBlob(ctx, url)
		return err
	}
	uploaded.add(media.ID, url)
	return nil
}

// deleteBlob removes an uploaded object; failures only leave an orphaned object behind.
func (s *recipeService) deleteBlob(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key := s.s3.GetObjectKeyFromLink(url)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		s.logger.Warn("blob cleanup failed", zap.String("key", key), zap.Error(err))
	}
}
