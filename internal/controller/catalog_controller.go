package controller

import (
	"exammaster_backend/internal/service"
	"exammaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

type PublishReq struct {
	Published *bool `json:"published" binding:"required"`
}

// @Summary Create a question
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionReq true "Question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 422 {object} util.Response
// @Router /admin/questions [post]
func (c *CatalogController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary Update a question
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Param body body service.QuestionReq true "Question"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /admin/questions/{id} [put]
func (c *CatalogController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary Create a test
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TestReq true "Test"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 422 {object} util.Response
// @Router /admin/tests [post]
func (c *CatalogController) CreateTest(ctx *gin.Context) {
	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// @Summary Publish or unpublish a test
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Param body body PublishReq true "Publish flag"
// @Success 200 {object} util.Response
// @Router /admin/tests/{id}/publish [put]
func (c *CatalogController) SetPublished(ctx *gin.Context) {
	var req PublishReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := ctx.Param("id")
	if err := c.Service.SetPublished(ctx.Request.Context(), id, *req.Published); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id, "published": *req.Published})
}
