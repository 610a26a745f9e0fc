package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SummaryController serves the admin-only views. RequireAdmin guards its routes.
type SummaryController struct {
	sc    SummaryUseCase
	users UserUseCase
	posts PostUseCase
	errs  *errorWriter
}

func NewSummaryController(sc SummaryUseCase, users UserUseCase, posts PostUseCase, errs *errorWriter) *SummaryController {
	return &SummaryController{sc: sc, users: users, posts: posts, errs: errs}
}

func (ctl *SummaryController) Summary(c *gin.Context) {
	s, err := ctl.sc.Summary(c.Request.Context())
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (ctl *SummaryController) AdminDashboard(c *gin.Context) {
	users, err := ctl.users.ListUsers(c.Request.Context())
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	posts, err := ctl.posts.ListAll(c.Request.Context())
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "posts": posts})
}
