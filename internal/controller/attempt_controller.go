package controller

import (
	"exammaster_backend/internal/scoring"
	"exammaster_backend/internal/service"
	"exammaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc}
}

type SubmitAttemptReq struct {
	Answers []scoring.SubmittedAnswer `json:"answers"`
}

// @Summary Start or resume an attempt
// @Description Returns the caller's in-progress attempt if there is one
// @Tags Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 201 {object} util.Response{data=model.TestAttempt}
// @Failure 403 {object} util.Response
// @Router /tests/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Service.StartAttempt(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// @Summary List the caller's attempts at a test
// @Tags Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=[]model.TestAttempt}
// @Router /tests/{id}/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.Service.ListAttempts(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Submit answers and get the score report
// @Description Resubmitting a completed attempt returns the stored report
// @Tags Attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "Attempt ID"
// @Param body body SubmitAttemptReq true "Answers"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Router /attempts/{attemptId}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.SubmitAttempt(ctx.Request.Context(), user.UserID, ctx.Param("attemptId"), req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Get an attempt and its report
// @Tags Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "Attempt ID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Router /attempts/{attemptId} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	res, err := c.Service.GetAttemptResult(ctx.Request.Context(), user.UserID, ctx.Param("attemptId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
