package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/platform/ctxutil"
)

// pathID parses a positive integer path parameter, writing a 400 when it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errInvalidID(name))
		return 0, false
	}
	return id, true
}

type invalidIDError string

func (e invalidIDError) Error() string { return "invalid " + string(e) }

func errInvalidID(name string) error { return invalidIDError(name) }

func currentUserID(c *gin.Context) int64 {
	return ctxutil.UserID(c.Request.Context())
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}
