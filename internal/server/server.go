package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/teamchat-backend/internal/handler"
	"github.com/shinyyama/teamchat-backend/internal/logging"
	"github.com/shinyyama/teamchat-backend/internal/metrics"
	appmw "github.com/shinyyama/teamchat-backend/internal/middleware"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/service"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Logger *zap.Logger
	Views  view.Invalidator
	// Verifier enables firebase identity; nil trusts the X-Profile-ID header.
	Verifier            appmw.TokenVerifier
	AllowedOrigins      []string
	CaseSensitiveSearch bool
	SHA                 string
	BuildTime           string
}

type Server struct {
	e     *echo.Echo
	repos repository.Set
	svcs  *service.Services
}

func New(repos repository.Set, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	views := opts.Views
	if views == nil {
		views = view.Nop{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmw.RequestContext)
	e.Use(logging.RequestLogger(logger.Named("http")))
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", appmw.ProfileHeader},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin(opts.AllowedOrigins),
	}))

	svcs := service.New(repos, service.Options{
		Views:               views,
		CaseSensitiveSearch: opts.CaseSensitiveSearch,
		Logger:              logger,
	})

	profileHandler := handler.NewProfileHandler(svcs.Profiles)
	channelHandler := handler.NewChannelHandler(svcs.Channels)
	messageHandler := handler.NewMessageHandler(svcs.Messages, svcs.Threads)
	reactionHandler := handler.NewReactionHandler(svcs.Reactions)
	dmHandler := handler.NewDirectMessageHandler(svcs.DirectMessages, svcs.Conversations)

	authMw := appmw.NewAuthMiddleware(opts.Verifier, svcs.Profiles, logger.Named("auth"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    opts.SHA,
			"build_time": opts.BuildTime,
		})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api", authMw.Identify)
	api.GET("/me", profileHandler.Me, appmw.RequireProfile)
	api.GET("/profiles", profileHandler.List)
	api.GET("/profiles/:id", profileHandler.Get)

	api.GET("/channels", channelHandler.List)
	api.POST("/channels", channelHandler.Create)
	api.GET("/channels/:id", channelHandler.Get)
	api.GET("/channels/:id/messages", messageHandler.ListByChannel)
	api.POST("/channels/:id/messages", messageHandler.Create)

	api.GET("/messages/:id", messageHandler.Get)
	api.PATCH("/messages/:id", messageHandler.Update)
	api.DELETE("/messages/:id", messageHandler.Delete)
	api.GET("/messages/:id/thread", messageHandler.Thread)
	api.GET("/messages/:id/reactions", reactionHandler.Summary)
	api.POST("/messages/:id/reactions", reactionHandler.Add)
	api.DELETE("/messages/:id/reactions", reactionHandler.Remove)

	api.GET("/conversations", dmHandler.Conversations, appmw.RequireProfile)
	api.GET("/conversations/:profileId/messages", dmHandler.List, appmw.RequireProfile)
	api.POST("/conversations/:profileId/messages", dmHandler.Create)
	api.PATCH("/direct-messages/:id", dmHandler.Update)
	api.DELETE("/direct-messages/:id", dmHandler.Delete)

	if versions, ok := views.(view.Versioner); ok {
		api.GET("/views/version", handler.NewViewHandler(versions).Version)
	}

	return &Server{e: e, repos: repos, svcs: svcs}
}

// allowOrigin always admits localhost; anything else must be listed.
func allowOrigin(allowed []string) func(string) (bool, error) {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		if o != "" {
			set[o] = struct{}{}
		}
	}
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		_, ok := set[strings.TrimRight(low, "/")]
		return ok, nil
	}
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Services() *service.Services {
	return s.svcs
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.repos.SetDB(db)
}
