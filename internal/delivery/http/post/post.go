package http_post

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	http_common "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/common"
	"github.com/leiven89/BUJIN-YUGI/internal/model"
	usecase_post "github.com/leiven89/BUJIN-YUGI/internal/usecase/post"
)

type Controller struct {
	uc *usecase_post.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_post.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	{
		posts.POST("", c.publish)
		posts.GET("", c.list)
		posts.POST("/:id/like", c.toggleLike)
	}
}

// PostDTO never exposes who liked a post, only how many and whether
// the asking caller did.
type PostDTO struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Title      string    `json:"title,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	LikeCount  int       `json:"likeCount"`
	Liked      bool      `json:"liked"`
}

func newPostDTO(post model.Post, callerID string) PostDTO {
	return PostDTO{
		ID:         post.ID,
		AuthorName: post.AuthorName,
		Title:      post.Title,
		Text:       post.Text,
		CreatedAt:  post.CreatedAt,
		LikeCount:  post.LikeCount(),
		Liked:      callerID != "" && post.LikedByCaller(callerID),
	}
}

// PublishRequestDTO carries a technique write-up for the feed.
type PublishRequestDTO struct {
	AuthorName string `json:"authorName"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

// @Summary Publish a write-up
// @Description Appends a technique write-up to the shared feed
// @Tags Posts
// @Accept json
// @Produce json
// @Success 201 {object} PostDTO "Post created"
// @Failure 400 {object} http_common.ErrorResponse "Empty text"
// @Router /posts [post]
func (c *Controller) publish(ctx *gin.Context) {
	var req PublishRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	post, err := c.uc.Publish(ctx, req.AuthorName, req.Title, req.Text)
	if err != nil {
		c.logger.Error("failed to publish post", slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, newPostDTO(post, ""))
}

// @Summary List the feed
// @Description Returns posts newest first, capped by the page maximum
// @Tags Posts
// @Produce json
// @Param limit query int false "Page size"
// @Param callerId query string false "Marks posts the caller liked"
// @Success 200 {array} PostDTO "Posts"
// @Router /posts [get]
func (c *Controller) list(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	callerID := ctx.Query("callerId")

	posts, err := c.uc.List(ctx, limit)
	if err != nil {
		c.logger.Error("failed to list posts", slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostDTO(p, callerID))
	}
	ctx.JSON(http.StatusOK, out)
}

// ToggleLikeRequestDTO identifies the caller whose like flips.
type ToggleLikeRequestDTO struct {
	CallerID string `json:"callerId"`
}

// ToggleLikeResponseDTO reports the state after the flip.
type ToggleLikeResponseDTO struct {
	PostID    string `json:"postId"`
	LikeCount int    `json:"likeCount"`
	Liked     bool   `json:"liked"`
}

// @Summary Toggle a like
// @Description Likes the post, or unlikes it if the caller already had
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} ToggleLikeResponseDTO "New like state"
// @Failure 400 {object} http_common.ErrorResponse "Missing callerId"
// @Failure 404 {object} http_common.ErrorResponse "Post not found"
// @Router /posts/{id}/like [post]
func (c *Controller) toggleLike(ctx *gin.Context) {
	postID := ctx.Param("id")

	var req ToggleLikeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	likeCount, liked, err := c.uc.ToggleLike(ctx, postID, req.CallerID)
	if err != nil {
		c.logger.Error("failed to toggle like",
			slog.String("post_id", postID), slog.String("error", err.Error()))
		http_common.RespondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, ToggleLikeResponseDTO{
		PostID:    postID,
		LikeCount: likeCount,
		Liked:     liked,
	})
}
