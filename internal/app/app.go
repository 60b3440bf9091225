package app

import (
	"github.com/leiven89/BUJIN-YUGI/internal/config"
	http_health "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/health"
	http_init "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/init"
	http_post "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/post"
	http_room "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/room"
	http_voting "github.com/leiven89/BUJIN-YUGI/internal/delivery/http/voting"
	"github.com/leiven89/BUJIN-YUGI/internal/model"
	storage_post "github.com/leiven89/BUJIN-YUGI/internal/storage/post"
	storage_room "github.com/leiven89/BUJIN-YUGI/internal/storage/room"
	usecase_game "github.com/leiven89/BUJIN-YUGI/internal/usecase/game"
	usecase_post "github.com/leiven89/BUJIN-YUGI/internal/usecase/post"
	usecase_room "github.com/leiven89/BUJIN-YUGI/internal/usecase/room"
)

func Go(cfg *config.Config) {
	roomRegistry := storage_room.New()
	postRepository := storage_post.New()

	roomUC := usecase_room.New(roomRegistry, cfg.Game.NameMaxLen)
	gameUC := usecase_game.New(roomRegistry, cfg.Game.TechniqueMaxLen, model.WinnerMode(cfg.Game.WinnerMode))
	postUC := usecase_post.New(postRepository, cfg.Game.NameMaxLen, cfg.Posts.TextMaxLen, cfg.Posts.ListMax)

	controllerPool := http_init.NewControllerPool(cfg.HTTP)
	controllerPool.Add(http_room.New(roomUC))
	controllerPool.Add(http_voting.New(gameUC))
	controllerPool.Add(http_post.New(postUC))
	controllerPool.Add(http_health.New(roomRegistry, postRepository))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
