package http_init

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/leiven89/BUJIN-YUGI/internal/config"
	http_bodylimit_middleware "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/middleware/bodylimit"
)

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
}

func NewControllerPool(cfg config.HTTPServer) *ControllerPool {
	engine := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	engine.Use(cors.New(corsCfg))

	if cfg.MaxBodyBytes > 0 {
		engine.Use(http_bodylimit_middleware.New(cfg.MaxBodyBytes))
	}

	// The client is a static bundle; anything the API does not claim
	// falls through to it.
	if cfg.StaticDir != "" {
		engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}

	rg := engine.Group("/")
	return &ControllerPool{
		pool:   make([]Controller, 0, 10),
		rg:     rg,
		engine: engine,
	}
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) RunAll(port string) {
	if err := pool.engine.Run(":" + port); err != nil {
		log.Fatalf("failed to run HTTP server: %v", err)
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}
