package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string

	CORSOrigins  []string
	MaxBodyBytes int64
	StaticDir    string
}

type Game struct {
	TechniqueMaxLen int
	NameMaxLen      int
	WinnerMode      string
}

type Posts struct {
	TextMaxLen int
	ListMax    int
}

type Config struct {
	HTTP  HTTPServer
	Game  Game
	Posts Posts
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:  *newHTTP(),
		Game:  *newGame(),
		Posts: *newPosts(),
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:         getenv("HTTP_PORT", "8080"),
		Host:         getenv("HTTP_HOST", "localhost"),
		CORSOrigins:  splitList(getenv("CORS_ORIGINS", "*")),
		MaxBodyBytes: int64(getenvInt("MAX_BODY_BYTES", 1<<20)),
		StaticDir:    getenv("STATIC_DIR", ""),
	}
}

func newGame() *Game {
	return &Game{
		TechniqueMaxLen: getenvInt("TECHNIQUE_MAX_LEN", 200),
		NameMaxLen:      getenvInt("NAME_MAX_LEN", 24),
		WinnerMode:      getenv("WINNER_MODE", "set"),
	}
}

func newPosts() *Posts {
	return &Posts{
		TextMaxLen: getenvInt("POST_TEXT_MAX_LEN", 800),
		ListMax:    getenvInt("POSTS_LIST_MAX", 100),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := getenv(key, strconv.Itoa(defaultValue))
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s %s is not a number, using default %d", logtag, key, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
