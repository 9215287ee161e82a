package wotd

import (
	"strings"
	"time"

	"github.com/carpediction/server/internal/models"
	"github.com/carpediction/server/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler serves the word-of-the-day API. The read endpoints always answer
// 200 with a well-formed default shape; this data is informational and a
// storage outage must not become an error banner.
type Handler struct {
	svc *Service
}

// NewHandler builds the wotd handler.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the wotd API.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/wotd/add", h.add)
	rg.GET("/wotd/latest", h.latest)
	rg.GET("/wotd/archive", h.archive)
}

// wotdDTO is the wire shape of one record in latest responses. ID is an
// interface so the empty state serializes as `"_id": null`.
type wotdDTO struct {
	ID   interface{} `json:"_id"`
	Word string      `json:"word"`
	Def  string      `json:"def"`
}

func emptyDTO() wotdDTO { return wotdDTO{ID: nil, Word: "", Def: ""} }

func toDTO(m *models.WotdModel) wotdDTO {
	return wotdDTO{ID: m.ID, Word: m.Word, Def: m.Def}
}

type addRequest struct {
	Word string `json:"word"`
	Def  string `json:"def"`
	Date string `json:"date"`
}

func (h *Handler) add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Word) == "" {
		response.BadRequest(c, "word is required")
		return
	}

	dayKey := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			response.BadRequest(c, "invalid date")
			return
		}
		dayKey = parsed
	}

	outcome, rec, err := h.svc.UpsertForDay(c.Request.Context(), Candidate{
		Word:   strings.TrimSpace(req.Word),
		Def:    req.Def,
		DayKey: dayKey,
	})
	switch outcome {
	case Created:
		response.OK(c, gin.H{
			"msg":  "WOTD saved successfully!",
			"Wotd": toDTO(rec),
		})
	case DuplicateSkipped:
		response.BadRequest(c, "WOTD for this date already in DB, skipping.")
	default:
		response.InternalError(c, err)
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handler) latest(c *gin.Context) {
	rec, ok := h.svc.Latest(c.Request.Context())
	if !ok {
		response.OK(c, gin.H{
			"msg":  "WOTD unavailable",
			"Wotd": emptyDTO(),
		})
		return
	}
	dto := emptyDTO()
	if rec != nil {
		dto = toDTO(rec)
	}
	response.OK(c, gin.H{
		"msg":  "WOTD retrieved successfully!",
		"Wotd": dto,
	})
}

func (h *Handler) archive(c *gin.Context) {
	recs, ok := h.svc.Archive(c.Request.Context())
	if !ok {
		response.OK(c, gin.H{
			"msg":     "Archive unavailable",
			"Archive": []models.WotdModel{},
		})
		return
	}
	if recs == nil {
		recs = []models.WotdModel{}
	}
	response.OK(c, gin.H{
		"msg":     "Archive retrieved successfully!",
		"Archive": recs,
	})
}
