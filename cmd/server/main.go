package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/picdash/picdash/internal/artifact"
	"github.com/picdash/picdash/internal/artifact/replicate"
	"github.com/picdash/picdash/internal/config"
	"github.com/picdash/picdash/internal/game"
	"github.com/picdash/picdash/internal/ws"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`picdash - Real-time AI image party game

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                 Port to listen on (default: 8080)
  REPLICATE_API_TOKEN  Replicate API token for image generation
  REPLICATE_BASE_URL   Custom Replicate API base URL (optional)
  REPLICATE_MODEL     Image model to run (default: black-forest-labs/flux-schnell)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("picdash %s\n", version)
		return
	}

	cfg := config.FromEnv()
	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	// Socket server + game registry
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	reg := game.NewRegistry(rng)
	sock := ws.New(reg)
	io := sock.Mount(r)
	defer io.Close()

	// Artifact generation API: clients resolve an image here before
	// sending submit-prompt. A failed generation still answers with a
	// usable fallback image.
	var gen artifact.Generator = replicate.New(cfg.ReplicateToken, cfg.ReplicateBaseURL, cfg.ReplicateModel)
	fallbackRng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var fallbackMu sync.Mutex
	r.POST("/api/artifact", func(c *gin.Context) {
		var req struct {
			PromptText string `json:"promptText"`
		}
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.PromptText) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt text is required"})
			return
		}
		url, err := gen.Generate(c.Request.Context(), req.PromptText)
		if err != nil {
			zerologlog.Warn().Err(err).Msg("artifact generation failed, using fallback")
			fallbackMu.Lock()
			url = artifact.Fallback(fallbackRng)
			fallbackMu.Unlock()
			c.JSON(http.StatusOK, gin.H{"imageUrl": url, "fallback": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"imageUrl": url})
	})

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
