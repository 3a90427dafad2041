package handler

import (
	"errors"
	"net/http"
	"strconv"

	"homebudget/internal/logger"
	"homebudget/internal/service"
	"homebudget/internal/util"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as a bare 500.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrReferenceNotFound):
		util.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReferenceInUse):
		util.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPolicyViolation):
		util.Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		_ = c.Error(err)
		log.Error("request failed",
			"path", c.FullPath(),
			"request_id", c.GetString("requestID"),
			"error", err)
		util.Error(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindFailed answers 400 with one message per invalid field.
func bindFailed(c *gin.Context, err error) {
	util.Error(c, http.StatusBadRequest, "one or more validation errors occurred", util.ValidationMessages(err)...)
}

// invalid answers 400 for a field check done after binding.
func invalid(c *gin.Context, err error) {
	util.Error(c, http.StatusBadRequest, "one or more validation errors occurred", err.Error())
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
