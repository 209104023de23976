package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/playtrove/gamestore/internal/application"
	"github.com/playtrove/gamestore/internal/domain/entity"
	"github.com/playtrove/gamestore/internal/domain/repository"
	"github.com/playtrove/gamestore/pkg/response"
	"github.com/playtrove/gamestore/pkg/validation"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

// setTagsRequest carries the caller's desired final set. TagIDs is a pointer
// so an absent tagIds field is rejected while an explicit empty list (clear
// all edges) passes binding.
type setTagsRequest struct {
	TagIDs *[]int64 `json:"tagIds" binding:"required"`
}

type createGameRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidPayload)
		return 0, false
	}
	return id, true
}

// SetGenres PUT /api/games/:id/genres
func (h *CatalogHandler) SetGenres(c *gin.Context) {
	h.setTags(c, h.Svc.SetGenres)
}

// SetPlatforms PUT /api/games/:id/platforms
func (h *CatalogHandler) SetPlatforms(c *gin.Context) {
	h.setTags(c, h.Svc.SetPlatforms)
}

func (h *CatalogHandler) setTags(c *gin.Context, set func(context.Context, int64, []int64) error) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req setTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidPayload, validation.ToDetails(err))
		return
	}
	if err := set(c.Request.Context(), gameID, *req.TagIDs); err != nil {
		// The transaction is fully rolled back; state is unchanged and the
		// request is safe to retry.
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"ok": true})
}

// AddGenre POST /api/games/:id/genres/:tagID
func (h *CatalogHandler) AddGenre(c *gin.Context) {
	h.addTag(c, h.Svc.AddGenre)
}

// AddPlatform POST /api/games/:id/platforms/:tagID
func (h *CatalogHandler) AddPlatform(c *gin.Context) {
	h.addTag(c, h.Svc.AddPlatform)
}

func (h *CatalogHandler) addTag(c *gin.Context, add func(context.Context, int64, int64) error) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := idParam(c, "tagID")
	if !ok {
		return
	}
	err := add(c.Request.Context(), gameID, tagID)
	if err != nil && !errors.Is(err, repository.ErrDuplicateEdge) {
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	// An already-present edge is idempotent success.
	response.OK(c, http.StatusOK, gin.H{"ok": true})
}

// RemoveGenre DELETE /api/games/:id/genres/:tagID
func (h *CatalogHandler) RemoveGenre(c *gin.Context) {
	h.removeTag(c, h.Svc.RemoveGenre)
}

// RemovePlatform DELETE /api/games/:id/platforms/:tagID
func (h *CatalogHandler) RemovePlatform(c *gin.Context) {
	h.removeTag(c, h.Svc.RemovePlatform)
}

func (h *CatalogHandler) removeTag(c *gin.Context, remove func(context.Context, int64, int64) (bool, error)) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := idParam(c, "tagID")
	if !ok {
		return
	}
	removed, err := remove(c.Request.Context(), gameID, tagID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"removed": removed})
}

// GetGenres GET /api/games/:id/genres
func (h *CatalogHandler) GetGenres(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tags, err := h.Svc.GenresOf(c.Request.Context(), gameID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	if tags == nil {
		tags = []entity.Tag{}
	}
	response.OK(c, http.StatusOK, gin.H{"genres": tags})
}

// GetPlatforms GET /api/games/:id/platforms
func (h *CatalogHandler) GetPlatforms(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tags, err := h.Svc.PlatformsOf(c.Request.Context(), gameID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	if tags == nil {
		tags = []entity.Tag{}
	}
	response.OK(c, http.StatusOK, gin.H{"platforms": tags})
}

// GamesWithGenre GET /api/genres/:id/games
func (h *CatalogHandler) GamesWithGenre(c *gin.Context) {
	tagID, ok := idParam(c, "id")
	if !ok {
		return
	}
	ids, count, err := h.Svc.GamesWithGenre(c.Request.Context(), tagID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	response.OK(c, http.StatusOK, gin.H{"gameIds": ids, "count": count})
}

// CreateGame POST /api/games
func (h *CatalogHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validation.IsMissingFields(err) {
			response.Fail(c, http.StatusBadRequest, response.CodeMissingFields, validation.ToDetails(err))
			return
		}
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidPayload, validation.ToDetails(err))
		return
	}
	g, err := h.Svc.CreateGame(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{
		"id":          g.ID,
		"title":       g.Title,
		"description": g.Description,
		"created_at":  g.CreatedAt,
	})
}

// GetGame GET /api/games/:id
func (h *CatalogHandler) GetGame(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	g, err := h.Svc.GetGame(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.CodeNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"id":          g.ID,
		"title":       g.Title,
		"description": g.Description,
		"created_at":  g.CreatedAt,
	})
}

// ListGames GET /api/games
func (h *CatalogHandler) ListGames(c *gin.Context) {
	games, err := h.Svc.ListGames(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.CodeDBError)
		return
	}
	out := make([]gin.H, 0, len(games))
	for _, g := range games {
		out = append(out, gin.H{
			"id":          g.ID,
			"title":       g.Title,
			"description": g.Description,
			"created_at":  g.CreatedAt,
		})
	}
	response.OK(c, http.StatusOK, gin.H{"games": out})
}
