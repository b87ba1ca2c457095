package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userMe struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	IsMentor bool    `json:"is_mentor"`
}

// GET /users/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, userMe{ID: me.ID, Email: me.Email, FullName: me.FullName, IsMentor: me.IsMentor})
}

// GET /users/me/language
func (uh *UserHandler) GetLanguage(c *gin.Context) {
	code, err := uh.userService.GetLanguage(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"language_code": code})
}

// PUT /users/me/language
// body: { "language_code": "pt-BR" }
func (uh *UserHandler) SetLanguage(c *gin.Context) {
	var req struct {
		LanguageCode string `json:"language_code"`
	}
	if !bindJSON(c, &req) {
		return
	}
	code, err := uh.userService.SetLanguage(c.Request.Context(), currentUserID(c), req.LanguageCode)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"language_code": code})
}
