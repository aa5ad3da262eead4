package domain

import "errors"

var (
	MessageSuccessToggleLike    = "like updated"
	MessageSuccessToggleSave    = "notebook updated"
	MessageSuccessToggleFollow  = "follow updated"
	MessageSuccessShareRecipe   = "recipe shared"
	MessageSuccessAddComment    = "comment added"
	MessageSuccessDeleteComment = "comment deleted"
	MessageSuccessReportRecipe  = "recipe reported"
	MessageSuccessGetNotebook   = "success get notebook"

	MessageFailedToggleLike    = "failed to update like"
	MessageFailedToggleSave    = "failed to update notebook"
	MessageFailedToggleFollow  = "failed to update follow"
	MessageFailedShareRecipe   = "failed to share recipe"
	MessageFailedAddComment    = "failed to add comment"
	MessageFailedDeleteComment = "failed to delete comment"
	MessageFailedReportRecipe  = "failed to report recipe"
	MessageFailedGetNotebook   = "failed to get notebook"

	ErrCannotFollowSelf = errors.New("cannot follow yourself")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentForbidden = errors.New("only the comment author can delete this comment")
)

type (
	LikeResponse struct {
		Liked     bool  `json:"liked"`
		LikeCount int64 `json:"like_count"`
	}

	SaveResponse struct {
		Saved bool `json:"saved"`
	}

	FollowResponse struct {
		Following     bool  `json:"following"`
		FollowerCount int64 `json:"follower_count"`
	}

	ShareResponse struct {
		ShareCount int64 `json:"share_count"`
	}

	AddCommentRequest struct {
		Content string `json:"content" form:"content" validate:"required,max=2000"`
	}

	AddCommentResponse struct {
		Comment      CommentDetail `json:"comment"`
		CommentCount int64         `json:"comment_count"`
	}

	ReportRecipeRequest struct {
		Reason string `json:"reason" form:"reason" validate:"required,max=1000"`
	}

	ReportResponse struct {
		Reported bool `json:"reported"`
	}

	NotebookResponse struct {
		Recipes []RecipeSummary `json:"recipes"`
		Total   int64           `json:"total"`
	}
)
