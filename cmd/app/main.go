package main

import (
	"github.com/leiven89/BUJIN-YUGI/internal/app"
	"github.com/leiven89/BUJIN-YUGI/internal/config"
)

func main() {
	app.Go(config.Load())
}
