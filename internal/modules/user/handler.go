package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/carpediction/server/internal/middleware"
	"github.com/carpediction/server/internal/models"
	"github.com/carpediction/server/internal/pkg/jwt"
	"github.com/carpediction/server/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// tokenTTL is the session cookie lifetime.
const tokenTTL = 24 * time.Hour

// Handler serves registration, login, and session endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds the user handler.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the user API.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.GET("/logout", h.logout)
	rg.GET("/loggedin", auth, h.loggedIn)
}

type registerRequest struct {
	Username     string `json:"userName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	PasswordConf string `json:"passwordConf"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	rec, err := h.svc.Register(c.Request.Context(), Registration{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		PasswordConf: req.PasswordConf,
	})
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	if errors.Is(err, ErrEmailTaken) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "Email already registered."}})
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if !h.setSession(c, rec) {
		return
	}
	response.OK(c, gin.H{"msg": "User registered successfully!", "user": rec})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	rec, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrBadCredentials) {
		response.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if !h.setSession(c, rec) {
		return
	}
	response.OK(c, gin.H{"msg": "Logged in successfully!", "user": rec})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	response.Msg(c, "Logged out successfully!")
}

func (h *Handler) loggedIn(c *gin.Context) {
	response.OK(c, gin.H{
		"verified": true,
		"username": middleware.CurrentUsername(c),
	})
}

func (h *Handler) setSession(c *gin.Context, rec *models.UserModel) bool {
	token, err := jwt.Sign(rec.ID.Hex(), rec.Username, tokenTTL)
	if err != nil {
		response.InternalError(c, err)
		return false
	}
	c.SetCookie(middleware.TokenCookie, token, int(tokenTTL.Seconds()), "/", "", false, true)
	return true
}
