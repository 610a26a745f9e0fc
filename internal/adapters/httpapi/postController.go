package httpapi

import (
	"net/http"

	"blogcap/internal/adapters/httpapi/middleware"
	postPort "blogcap/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc   PostUseCase
	cc   CommentUseCase
	errs *errorWriter
}

func NewPostController(pc PostUseCase, cc CommentUseCase, errs *errorWriter) *PostController {
	return &PostController{pc: pc, cc: cc, errs: errs}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Title              string `json:"title" binding:"required"`
		Content            string `json:"content" binding:"required"`
		MaxCommentsPerUser *int   `json:"max_comments_per_user"`
	}
	if !ctl.errs.bind(c, &req) {
		return
	}

	p, err := ctl.pc.CreatePost(c.Request.Context(), middleware.IdentityFrom(c), postPort.CreatePostInput{
		Title:              req.Title,
		Content:            req.Content,
		MaxCommentsPerUser: req.MaxCommentsPerUser,
	})
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ViewPost is public. Logged-in callers also get their remaining quota.
func (ctl *PostController) ViewPost(c *gin.Context) {
	postID := c.Param("id")
	p, err := ctl.pc.GetPost(c.Request.Context(), postID)
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	comments, err := ctl.cc.ListByPost(c.Request.Context(), postID)
	if err != nil {
		ctl.errs.write(c, err)
		return
	}

	res := gin.H{"post": p, "comments": comments}
	if id := middleware.IdentityFrom(c); id.Authenticated() {
		quota, err := ctl.cc.Remaining(c.Request.Context(), postID, id.UserID.String())
		if err != nil {
			ctl.errs.write(c, err)
			return
		}
		res["quota"] = quota
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) EditPost(c *gin.Context) {
	var req struct {
		Title              string `json:"title" binding:"required"`
		Content            string `json:"content" binding:"required"`
		MaxCommentsPerUser *int   `json:"max_comments_per_user"`
	}
	if !ctl.errs.bind(c, &req) {
		return
	}

	p, err := ctl.pc.EditPost(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), postPort.EditPostInput{
		Title:              req.Title,
		Content:            req.Content,
		MaxCommentsPerUser: req.MaxCommentsPerUser,
	})
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
