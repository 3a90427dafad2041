package router

import (
	"net/http"
	"strings"

	"homebudget/internal/config"
	"homebudget/internal/handler"
	"homebudget/internal/logger"
	"homebudget/internal/metrics"
	"homebudget/internal/middleware"
	"homebudget/internal/service"
	"homebudget/internal/util"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine and the JSON API. m may be nil when
// metrics are disabled.
func SetupRouter(cfg *config.Config, svc *service.Services, log *logger.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		util.Error(c, http.StatusNotFound, "route not found")
	})
	r.GET("/healthz", func(c *gin.Context) {
		util.Success(c, http.StatusOK, "ok", nil)
	})
	if m != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// ====== API ======
	api := r.Group("/api")

	personHandler := handler.NewPersonHandler(svc.Persons, log)
	api.GET("/person", personHandler.List)
	api.POST("/person", personHandler.Create)
	api.GET("/person/search", personHandler.Search)
	api.GET("/person/:id", personHandler.Get)
	api.PUT("/person/:id", personHandler.Update)
	api.DELETE("/person/:id", personHandler.Delete)

	categoryHandler := handler.NewCategoryHandler(svc.Categories, log)
	api.GET("/category", categoryHandler.List)
	api.POST("/category", categoryHandler.Create)
	api.GET("/category/:id", categoryHandler.Get)
	api.PUT("/category/:id", categoryHandler.Update)
	api.DELETE("/category/:id", categoryHandler.Delete)

	txHandler := handler.NewTransactionHandler(svc.Transactions, log)
	api.GET("/transaction", txHandler.List)
	api.POST("/transaction", txHandler.Create)
	api.GET("/transaction/:id", txHandler.Get)
	api.PUT("/transaction/:id", txHandler.Update)
	api.DELETE("/transaction/:id", txHandler.Delete)
	api.GET("/transaction/person/:personId", txHandler.ListByPerson)
	api.GET("/transaction/category/:categoryId", txHandler.ListByCategory)
	api.GET("/transaction/totals", txHandler.Totals)
	api.GET("/transaction/totals/person/:personId", txHandler.TotalsByPerson)
	api.GET("/transaction/totals/category/:categoryId", txHandler.TotalsByCategory)

	exportHandler := handler.NewExportHandler(svc, log)
	api.GET("/transaction/export/csv", exportHandler.CSV)
	api.GET("/transaction/export/xlsx", exportHandler.XLSX)
	api.GET("/export/snapshot", exportHandler.Snapshot)

	return r
}

// Handler is SetupRouter behind LowercaseAPI; it is what the server runs.
func Handler(cfg *config.Config, svc *service.Services, log *logger.Logger, m *metrics.Metrics) http.Handler {
	return LowercaseAPI(SetupRouter(cfg, svc, log, m))
}

// LowercaseAPI rewrites /api paths to lower case before routing, so clients
// calling /api/Person or /api/Transaction/totals reach the same handlers,
// middleware included. Every /api route is lowercase and ids are numeric.
func LowercaseAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p := req.URL.Path
		if len(p) >= 4 && strings.EqualFold(p[:4], "/api") {
			if lower := strings.ToLower(p); lower != p {
				u := *req.URL
				u.Path = lower
				u.RawPath = strings.ToLower(u.RawPath)
				req = req.Clone(req.Context())
				req.URL = &u
			}
		}
		next.ServeHTTP(w, req)
	})
}
