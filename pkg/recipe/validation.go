package recipe

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/internal/utils/storage"

	"github.com/go-playground/validator/v10"
)

const (
	msgNameRequired       = "Tên món ăn không được để trống"
	msgNameTooLong        = "Tên món ăn không được vượt quá 255 ký tự"
	msgDescriptionTooLong = "Mô tả không được vượt quá 5000 ký tự"
	msgCookTimeRange      = "Thời gian nấu phải từ 1–1440 phút"
	msgLevelInvalid       = "Độ khó không hợp lệ, chỉ chấp nhận: Dễ, Trung bình, Khó"
	msgNoIngredient       = "Phải có ít nhất 1 nguyên liệu"
	msgNoType             = "Phải có ít nhất 1 loại món ăn"
	msgNoStep             = "Phải có ít nhất 1 bước thực hiện"
	msgStepBlank          = "Bước %d: nội dung không được để trống"
	msgThumbnailTooLarge  = "Ảnh đại diện không được vượt quá 10MB"
	msgThumbnailFormat    = "Ảnh đại diện chỉ chấp nhận định dạng: jpg, jpeg, png, gif, webp"
	msgThumbnailContent   = "Ảnh đại diện phải là tệp ảnh hợp lệ"
	msgMainMediaTooLarge  = "Ảnh/video chính không được vượt quá 50MB"
	msgMainMediaFormat    = "Ảnh/video chính phải là tệp ảnh hoặc video hợp lệ"
	msgStepMediaTooLarge  = "Bước %d: tệp \"%s\" vượt quá 50MB"
)

type fileRule int

const (
	ruleNone fileRule = iota
	// ruleThumbnail is the replacement thumbnail of an edit: image extensions, 10 MiB.
	ruleThumbnail
	// ruleMainMedia is the create-time main media: image or video, 50 MiB.
	ruleMainMedia
)

// validateRecipeInput collects every violation instead of stopping at the first one.
func validateRecipeInput(v *validator.Validate, in domain.RecipeInput, cover *multipart.FileHeader, rule fileRule) error {
	verr := &domain.ValidationError{}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := v.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.Messages = append(verr.Messages, fieldMessage(fe))
		}
	}

	if len(uniqueNames(in.Ingredients)) == 0 {
		verr.Add(msgNoIngredient)
	}
	if len(uniqueNames(in.Types)) == 0 {
		verr.Add(msgNoType)
	}
	if len(in.Steps) == 0 {
		verr.Add(msgNoStep)
	}
	for i, step := range in.Steps {
		if strings.TrimSpace(step.Description) == "" {
			verr.Add(msgStepBlank, i+1)
		}
		for _, file := range stepFiles(step) {
			if file.Size > domain.MaxStepMediaSize {
				verr.Add(msgStepMediaTooLarge, i+1, file.Filename)
			}
		}
	}

	if cover != nil {
		switch rule {
		case ruleThumbnail:
			if cover.Size > domain.MaxThumbnailSize {
				verr.Add(msgThumbnailTooLarge)
			}
			if !hasThumbnailExtension(cover.Filename) {
				verr.Add(msgThumbnailFormat)
			} else if image, _ := sniffKind(cover); !image {
				verr.Add(msgThumbnailContent)
			}
		case ruleMainMedia:
			if cover.Size > domain.MaxStepMediaSize {
				verr.Add(msgMainMediaTooLarge)
			}
			if image, video := sniffKind(cover); !image && !video {
				verr.Add(msgMainMediaFormat)
			}
		}
	}

	return verr.Err()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return msgNameRequired
		}
		return msgNameTooLong
	case "Description":
		return msgDescriptionTooLong
	case "CookTime":
		return msgCookTimeRange
	case "Level":
		return msgLevelInvalid
	default:
		return fmt.Sprintf("%s không hợp lệ", fe.Field())
	}
}

func hasThumbnailExtension(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return slices.Contains(domain.ThumbnailExtensions, ext)
}

// sniffKind reports whether the file content is an accepted image or an accepted video.
// Unreadable content is neither.
func sniffKind(file *multipart.FileHeader) (image, video bool) {
	mtype, err := storage.DetectMediaType(file)
	if err != nil {
		return false, false
	}
	return storage.CheckAllowed(mtype, false) == nil, storage.CheckAllowed(mtype, true) == nil
}

// stepFiles returns the multi-file field when it has files, otherwise the legacy single file.
func stepFiles(step domain.StepInput) []*multipart.FileHeader {
	files := make([]*multipart.FileHeader, 0, len(step.Media))
	for _, f := range step.Media {
		if f != nil {
			files = append(files, f)
		}
	}
	if len(files) > 0 {
		return files
	}
	if step.LegacyMedia != nil {
		return []*multipart.FileHeader{step.LegacyMedia}
	}
	return nil
}

// canonicalLevel returns the recognized spelling of level.
func canonicalLevel(level string) string {
	level = strings.TrimSpace(level)
	for _, known := range domain.RecipeLevels {
		if strings.EqualFold(level, known) {
			return known
		}
	}
	return level
}

// stepCount is the value stored in Recipe.StepNumber.
func stepCount(steps int) int {
	return max(1, steps)
}
