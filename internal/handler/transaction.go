package handler

import (
	"net/http"

	"homebudget/internal/logger"
	"homebudget/internal/models"
	"homebudget/internal/service"
	"homebudget/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	svc *service.TransactionService
	log *logger.Logger
}

func NewTransactionHandler(svc *service.TransactionService, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{svc: svc, log: log}
}

// ---------- requests ----------

type createTransactionReq struct {
	Description string                 `json:"description" binding:"required,min=2,max=400"`
	Value       *decimal.Decimal       `json:"value" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required,oneof=1 2"`
	CategoryID  uint                   `json:"categoryId" binding:"required"`
	PersonID    uint                   `json:"personId" binding:"required"`
}

// every field optional; see service.UpdateTransactionInput
type updateTransactionReq struct {
	Description *string                 `json:"description" binding:"omitempty,max=400"`
	Value       *decimal.Decimal        `json:"value"`
	Type        *models.TransactionType `json:"type" binding:"omitempty,oneof=1 2"`
	CategoryID  *uint                   `json:"categoryId" binding:"omitempty,gt=0"`
	PersonID    *uint                   `json:"personId" binding:"omitempty,gt=0"`
}

// ---------- commands ----------

func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := util.ValidateValue(*req.Value); err != nil {
		invalid(c, err)
		return
	}
	desc, err := util.NormalizeText("description", req.Description, 2, 400)
	if err != nil {
		invalid(c, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), service.CreateTransactionInput{
		Description: desc,
		Value:       *req.Value,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		PersonID:    req.PersonID,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusCreated, "transaction created", t)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if req.Value != nil {
		if err := util.ValidateValue(*req.Value); err != nil {
			invalid(c, err)
			return
		}
	}
	desc, err := util.NormalizeOptionalText("description", req.Description, 2, 400)
	if err != nil {
		invalid(c, err)
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, service.UpdateTransactionInput{
		Description: desc,
		Value:       req.Value,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		PersonID:    req.PersonID,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "transaction updated", t)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "transaction deleted", nil)
}

// ---------- queries ----------

func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "transactions retrieved", txs)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "transaction retrieved", t)
}

func (h *TransactionHandler) ListByPerson(c *gin.Context) {
	id, ok := parseID(c, "personId")
	if !ok {
		return
	}
	txs, err := h.svc.ListByPerson(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "transactions retrieved", txs)
}

func (h *TransactionHandler) ListByCategory(c *gin.Context) {
	id, ok := parseID(c, "categoryId")
	if !ok {
		return
	}
	txs, err := h.svc.ListByCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "transactions retrieved", txs)
}

func (h *TransactionHandler) Totals(c *gin.Context) {
	totals, err := h.svc.Totals(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "totals calculated", totals)
}

func (h *TransactionHandler) TotalsByPerson(c *gin.Context) {
	id, ok := parseID(c, "personId")
	if !ok {
		return
	}
	totals, err := h.svc.TotalsByPerson(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "totals calculated", totals)
}

func (h *TransactionHandler) TotalsByCategory(c *gin.Context) {
	id, ok := parseID(c, "categoryId")
	if !ok {
		return
	}
	totals, err := h.svc.TotalsByCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	util.Success(c, http.StatusOK, "totals calculated", totals)
}
