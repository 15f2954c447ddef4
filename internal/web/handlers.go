package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/holocron/internal/loader"
	"github.com/rshade/holocron/internal/logging"
	"github.com/rshade/holocron/internal/swapi"
	"github.com/rshade/holocron/pkg/version"
)

// PageLoader runs one fetch cycle. *loader.Loader satisfies it.
type PageLoader interface {
	Load(ctx context.Context, id string) (*loader.ViewState, error)
}

// CharacterHandlers serves character pages.
type CharacterHandlers struct {
	loader PageLoader
	logger zerolog.Logger
}

// NewCharacterHandlers creates handlers backed by l.
func NewCharacterHandlers(l PageLoader, logger zerolog.Logger) *CharacterHandlers {
	return &CharacterHandlers{loader: l, logger: logger}
}

// pageData is the template context for every page.
type pageData struct {
	Title   string
	Status  int
	Message string
	State   *loader.ViewState
	PrevID  string
	NextID  string
	Version string
}

// Index redirects to the first character.
func (h *CharacterHandlers) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/character/1")
}

// Healthz reports liveness.
func (h *CharacterHandlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.GetVersion(),
	})
}

// NotFound renders the error page for unknown routes.
func (h *CharacterHandlers) NotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "Page not found")
}

// GetCharacterPage renders the HTML character page. The page never renders empty:
// a bad identifier is a 400, an unknown character a 404, any other failure a 502.
func (h *CharacterHandlers) GetCharacterPage(c *gin.Context) {
	id, err := swapi.ValidateID(c.Param("id"))
	if err != nil {
		h.renderError(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.load(c, id)
	if err != nil {
		h.renderError(c, statusForError(err), err.Error())
		return
	}

	c.HTML(http.StatusOK, "character", pageData{
		Title:   state.Character.Name,
		Status:  http.StatusOK,
		State:   state,
		PrevID:  neighbour(id, -1),
		NextID:  neighbour(id, 1),
		Version: version.GetVersion(),
	})
}

// GetCharacterJSON returns the view state as JSON.
func (h *CharacterHandlers) GetCharacterJSON(c *gin.Context) {
	id, err := swapi.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.load(c, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
			"state": state,
		})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *CharacterHandlers) load(c *gin.Context, id string) (*loader.ViewState, error) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	state, err := h.loader.Load(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("character_id", id).Msg("character load failed")
		return state, err
	}
	log.Debug().
		Str("character_id", id).
		Str("cycle_id", state.CycleID).
		Dur("duration_ms", time.Since(start)).
		Msg("character loaded")
	return state, nil
}

func (h *CharacterHandlers) renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error", pageData{
		Title:   http.StatusText(status),
		Status:  status,
		Message: msg,
		Version: version.GetVersion(),
	})
}

// statusForError maps a load failure to an HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, swapi.ErrInvalidID):
		return http.StatusBadRequest
	case swapi.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
