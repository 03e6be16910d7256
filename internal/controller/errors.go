package controller

import (
	"errors"
	"exammaster_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the response helpers.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidTest), errors.Is(err, util.ErrInvalidQuestion):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidTopic):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrTestNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrTestNotPublished),
		errors.Is(err, util.ErrAttemptNotOwned),
		errors.Is(err, util.ErrNotEligible):
		util.Error(ctx, http.StatusForbidden, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
