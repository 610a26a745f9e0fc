package httpapi

import (
	"net/http"

	"blogcap/internal/adapters/httpapi/middleware"
	"blogcap/internal/core/access"
	userEntity "blogcap/internal/core/user"
	userPort "blogcap/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	uc      UserUseCase
	session SessionUseCase
	posts   PostUseCase
	errs    *errorWriter
}

func NewUserController(uc UserUseCase, session SessionUseCase, posts PostUseCase, errs *errorWriter) *UserController {
	return &UserController{uc: uc, session: session, posts: posts, errs: errs}
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	// only an admin session may mint another admin
	if req.Role == string(userEntity.RoleAdmin) && !access.CanViewAdminDashboard(middleware.IdentityFrom(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only admins can register admins", "login_url": middleware.AdminLoginURL})
		return
	}

	u, err := ctl.uc.RegisterUser(c.Request.Context(), userPort.RegisterInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	id, err := ctl.uc.LoginAsUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	ctl.issue(c, id)
}

func (ctl *UserController) LoginAdmin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	id, err := ctl.uc.LoginAsAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	ctl.issue(c, id)
}

func (ctl *UserController) issue(c *gin.Context, id access.Identity) {
	res, err := ctl.session.Issue(c.Request.Context(), id)
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) Logout(c *gin.Context) {
	if err := ctl.session.Revoke(c.Request.Context(), middleware.TokenFrom(c)); err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Dashboard shows the caller's account and the posts they wrote.
func (ctl *UserController) Dashboard(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	u, err := ctl.uc.GetUser(c.Request.Context(), id.UserID.String())
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	posts, err := ctl.posts.ListByAuthor(c.Request.Context(), u.ID)
	if err != nil {
		ctl.errs.write(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "posts": posts})
}
