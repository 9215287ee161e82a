package comment

import (
	"errors"

	"github.com/carpediction/server/internal/middleware"
	"github.com/carpediction/server/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler serves the comment API.
type Handler struct {
	svc *Service
}

// NewHandler builds the comment handler.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the comment API. Writes sit behind auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/comments/retrieve/:query", h.retrieve)
	rg.GET("/comments/tops/:query", h.tops)
	rg.POST("/comments/post", auth, h.post)
	rg.PUT("/comments/like", auth, h.like)
	rg.DELETE("/comments/delete/:id", auth, h.remove)
}

func (h *Handler) retrieve(c *gin.Context) {
	recs, err := h.svc.ForQuery(c.Request.Context(), c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"msg":      "Comments retrieved successfully!",
		"Comments": recs,
	})
}

func (h *Handler) tops(c *gin.Context) {
	recs, err := h.svc.Tops(c.Request.Context(), c.Param("query"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"msg":      "Top comments retrieved successfully!",
		"Comments": recs,
	})
}

type postRequest struct {
	Query string `json:"query"`
	Text  string `json:"text"`
}

func (h *Handler) post(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	rec, err := h.svc.Post(c.Request.Context(), req.Query, middleware.CurrentUsername(c), req.Text)
	if errors.Is(err, ErrEmptyComment) {
		response.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"msg":     "Comment posted successfully!",
		"Comment": rec,
	})
}

type likeRequest struct {
	ID string `json:"id"`
}

func (h *Handler) like(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	liked, err := h.svc.ToggleLike(c.Request.Context(), id, middleware.CurrentUsername(c))
	if errors.Is(err, ErrNotFound) {
		response.BadRequest(c, "comment not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"msg":   "Comment like toggled successfully!",
		"liked": liked,
	})
}

func (h *Handler) remove(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	err = h.svc.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.BadRequest(c, "comment not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Msg(c, "Comment deleted successfully!")
}
