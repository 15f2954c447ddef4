package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter configures all routes and middleware.
func NewRouter(h *CharacterHandlers, opts RouterOptions) (*gin.Engine, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(opts.Logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(CORSMiddleware(opts.AllowedOrigins))
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/", h.Index)
	r.GET("/healthz", h.Healthz)
	r.GET("/character/:id", h.GetCharacterPage)

	api := r.Group("/api")
	{
		api.GET("/character/:id", h.GetCharacterJSON)
	}

	r.NoRoute(h.NotFound)
	return r, nil
}
