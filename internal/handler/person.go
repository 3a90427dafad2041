package handler

import (
	"net/http"
	"strings"

	"homebudget/internal/logger"
	"homebudget/internal/service"
	"homebudget/internal/util"

	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	svc *service.PersonService
	log *logger.Logger
}

func NewPersonHandler(svc *service.PersonService, log *logger.Logger) *PersonHandler {
	return &PersonHandler{svc: svc, log: log}
}

type createPersonReq struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
	Age  int    `json:"age" binding:"min=0,max=150"`
}

type updatePersonReq struct {
	Name *string `json:"name" binding:"omitempty,max=200"`
	Age  *int    `json:"age" binding:"omitempty,min=0,max=150"`
}

func (h *PersonHandler) List(c *gin.Context) {
	persons, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "persons retrieved", persons)
}

func (h *PersonHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "person retrieved", p)
}

// Search looks a person up by exact name: GET /person/search?name=Alice
func (h *PersonHandler) Search(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		util.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	p, err := h.svc.SearchByName(c.Request.Context(), name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "person retrieved", p)
}

func (h *PersonHandler) Create(c *gin.Context) {
	var req createPersonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	name, err := util.NormalizeText("name", req.Name, 2, 200)
	if err != nil {
		invalid(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), name, req.Age)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusCreated, "person created", p)
}

func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updatePersonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	name, err := util.NormalizeOptionalText("name", req.Name, 2, 200)
	if err != nil {
		invalid(c, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, service.UpdatePersonInput{Name: name, Age: req.Age})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "person updated", p)
}

func (h *PersonHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "person deleted", nil)
}
