package app

import (
	"net/http"

	"github.com/carpediction/server/internal/middleware"
	"github.com/carpediction/server/internal/modules/comment"
	"github.com/carpediction/server/internal/modules/search"
	"github.com/carpediction/server/internal/modules/search/provider"
	"github.com/carpediction/server/internal/modules/user"
	"github.com/carpediction/server/internal/modules/wotd"
	"github.com/carpediction/server/internal/pkg/httplog"
	pkgredis "github.com/carpediction/server/internal/pkg/redis"
	"github.com/carpediction/server/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	cfg := a.cfg
	log := a.logger
	authMW := middleware.Authenticate()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// outbound provider traffic goes through the logging transport with
	// API keys redacted
	hc := &http.Client{
		Transport: httplog.Transport(http.DefaultTransport, log.Named("outbound"), httplog.DefaultRedaction()),
	}

	p := cfg.Providers
	clients := []provider.Client{
		provider.NewWordsAPI(p.WordsAPIURL, p.RapidAPIKey, p.Timeout.D(), hc),
		provider.NewDatamuse(p.DatamuseURL, p.Timeout.D(), hc),
		provider.NewDictionary(p.DictionaryURL, p.DictionaryKey, p.Timeout.D(), hc),
	}
	cache := search.NewCache(rc, p.CacheTTL.D(), log.Named("cache"))

	api := r.Group("/api")
	api.Use(middleware.RateLimit(rc))

	search.NewHandler(clients, cache, log.Named("search")).RegisterRoutes(api)

	wotdStore := wotd.NewStore(a.db)
	scraper := wotd.NewScraper(cfg.Wotd.SourceURL, cfg.Wotd.FetchTimeout.D(), hc)
	a.wotdSvc = wotd.NewService(wotdStore, scraper, log)
	wotd.NewHandler(a.wotdSvc).RegisterRoutes(api)

	commentSvc := comment.NewService(comment.NewStore(a.db), log)
	comment.NewHandler(commentSvc).RegisterRoutes(api, authMW)

	userSvc := user.NewService(user.NewStore(a.db), log)
	user.NewHandler(userSvc).RegisterRoutes(api, authMW)
}
