package http_health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Counter interface {
	Count(ctx context.Context) int
}

type Controller struct {
	rooms Counter
	posts Counter
}

func New(rooms, posts Counter) *Controller {
	return &Controller{
		rooms: rooms,
		posts: posts,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.health)
}

type HealthResponseDTO struct {
	OK        bool `json:"ok"`
	RoomCount int  `json:"roomCount"`
	PostCount int  `json:"postCount"`
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponseDTO
// @Router /health [get]
func (c *Controller) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponseDTO{
		OK:        true,
		RoomCount: c.rooms.Count(ctx),
		PostCount: c.posts.Count(ctx),
	})
}
