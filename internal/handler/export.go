package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"homebudget/internal/export"
	"homebudget/internal/logger"
	"homebudget/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	svc *service.Services
	log *logger.Logger
}

func NewExportHandler(svc *service.Services, log *logger.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log}
}

func attachment(c *gin.Context, ext string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.%s\"",
		time.Now().Format("20060102"), ext))
}

// render buffers the file so a failure can still be reported as JSON.
func (h *ExportHandler) render(c *gin.Context, contentType, ext string, write func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		writeError(c, h.log, err)
		return
	}
	attachment(c, ext)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) CSV(c *gin.Context) {
	txs, err := h.svc.Transactions.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.render(c, "text/csv; charset=utf-8", "csv", func(b *bytes.Buffer) error {
		return export.WriteCSV(b, txs)
	})
}

func (h *ExportHandler) XLSX(c *gin.Context) {
	totals, err := h.svc.Transactions.Totals(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.render(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", func(b *bytes.Buffer) error {
		return export.WriteXLSX(b, totals)
	})
}

// Snapshot dumps persons, categories and transactions as one JSON document.
func (h *ExportHandler) Snapshot(c *gin.Context) {
	snap, err := export.BuildSnapshot(c.Request.Context(), h.svc)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.render(c, "application/json; charset=utf-8", "json", func(b *bytes.Buffer) error {
		return export.WriteJSON(b, snap)
	})
}
