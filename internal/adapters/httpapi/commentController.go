package httpapi

import (
	"net/http"
	"strings"

	"blogcap/internal/adapters/httpapi/middleware"
	"blogcap/internal/core/access"
	"blogcap/internal/core/errs"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	cc   CommentUseCase
	errs *errorWriter
}

func NewCommentController(cc CommentUseCase, errs *errorWriter) *CommentController {
	return &CommentController{cc: cc, errs: errs}
}

func (ctl *CommentController) SubmitComment(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		ctl.errs.write(c, errs.Invalid("content", "is required"))
		return
	}

	id := middleware.IdentityFrom(c)
	if !access.CanComment(id) {
		ctl.errs.write(c, errs.ErrUnauthenticated)
		return
	}

	comment, err := ctl.cc.SubmitComment(c.Request.Context(), c.Param("id"), id.UserID.String(), req.Content)
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
