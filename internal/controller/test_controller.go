package controller

import (
	"exammaster_backend/internal/service"
	"exammaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Catalog  *service.CatalogService
	Attempts *service.AttemptService
}

func NewTestController(catalog *service.CatalogService, attempts *service.AttemptService) *TestController {
	return &TestController{Catalog: catalog, Attempts: attempts}
}

// @Summary List published tests
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx)

	tests, total, err := c.Catalog.ListPublished(ctx.Request.Context(), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: tests, Total: total, Page: page, Limit: limit})
}

// @Summary Get a test with its questions
// @Description Answer keys are never included
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=model.TestView}
// @Failure 404 {object} util.Response
// @Router /tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	view, err := c.Catalog.GetTestView(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Check whether the caller may start a new attempt
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=scoring.Eligibility}
// @Router /tests/{id}/eligibility [get]
func (c *TestController) CheckEligibility(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	elig, err := c.Attempts.CheckEligibility(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, elig)
}
