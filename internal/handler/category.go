package handler

import (
	"net/http"

	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/service"
	"homebudget/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc *service.CategoryService
	log *logger.Logger
}

func NewCategoryHandler(svc *service.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

// purpose is a bitset: 0 none, 1 income, 2 expense, 3 both
type createCategoryReq struct {
	Description string         `json:"description" binding:"required,min=2,max=400"`
	Purpose     models.Purpose `json:"purpose" binding:"min=0,max=3"`
}

type updateCategoryReq struct {
	Description *string         `json:"description" binding:"omitempty,max=400"`
	Purpose     *models.Purpose `json:"purpose" binding:"omitempty,min=0,max=3"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "categories retrieved", cats)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "category retrieved", cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	desc, err := util.NormalizeText("description", req.Description, 2, 400)
	if err != nil {
		invalid(c, err)
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), desc, req.Purpose)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusCreated, "category created", cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	desc, err := util.NormalizeOptionalText("description", req.Description, 2, 400)
	if err != nil {
		invalid(c, err)
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), id, service.UpdateCategoryInput{
		Description: desc,
		Purpose:     req.Purpose,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "category updated", cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "category deleted", nil)
}
