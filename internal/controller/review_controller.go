package controller

import (
	"exammaster_backend/internal/service"
	"exammaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *service.ReviewService
}

func NewReviewController(svc *service.ReviewService) *ReviewController {
	return &ReviewController{Service: svc}
}

type RecordReviewReq struct {
	Performance *int `json:"performance" binding:"required,min=0,max=5"`
}

// @Summary List topics due for review
// @Tags Reviews
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ReviewRecord}
// @Router /reviews/due [get]
func (c *ReviewController) ListDue(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.Service.ListDue(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary Record a self-rated review of a topic
// @Tags Reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param topic path string true "Topic"
// @Param body body RecordReviewReq true "Recall quality 0 to 5"
// @Success 200 {object} util.Response{data=model.ReviewRecord}
// @Router /reviews/{topic} [post]
func (c *ReviewController) RecordReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecordReviewReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.Service.RecordReview(ctx.Request.Context(), user.UserID, ctx.Param("topic"), *req.Performance)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}
