// Command cubefield opens a window onto a field of spinning textured cubes.
// Space drops a cube at a random free spot, a left click drops one under the
// cursor, WASD/QE fly the camera and the arrow keys turn it.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"cubefield/config"
	"cubefield/feed"
	"cubefield/scene"
)

var (
	configPath = flag.String("config", "", "YAML config file (defaults are used when empty or missing)")
	feedAddr   = flag.String("feed", "", "serve the placement feed on this address, e.g. :8080")
	seed       = flag.Uint64("seed", 0, "random seed, 0 picks one from the clock")
)

const feedQueue = 256

func init() {
	runtime.LockOSThread()

	switch os.Getenv("WGPU_LOG_LEVEL") {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevel_Off)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevel_Error)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevel_Warn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevel_Info)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevel_Debug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevel_Trace)
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *feedAddr != "" {
		cfg.FeedAddr = *feedAddr
	}

	s0 := *seed
	if s0 == 0 {
		s0 = uint64(time.Now().UnixNano())
	}
	log.Printf("seed %d", s0)
	session := scene.NewSession(cfg, rand.New(rand.NewPCG(s0, s0>>1)), log.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.FeedAddr != "" {
		hub := feed.NewHub(feedQueue, log.Default())
		session.Scene.OnPlacement = func(ev scene.PlacementEvent) {
			hub.Publish(feed.FromPlacement(ev))
		}
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.FeedAddr); err != nil {
				log.Println(err)
			}
		}()
	}

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.WindowWidth, cfg.WindowHeight, "cubefield", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()

	s, err := InitState(window)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Destroy()

	// Clicks arrive in window coordinates, so the session tracks the window
	// size while the swap chain follows the framebuffer.
	session.Resize(window.GetSize())
	bindInput(window, session)
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		session.Resize(width, height)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if err := s.Resize(width, height); err != nil {
			log.Fatal("resize: ", err)
		}
	})

	frames := 0
	report := time.NewTicker(time.Second)
	defer report.Stop()

	for !window.ShouldClose() {
		glfw.PollEvents()

		items := session.Frame(time.Now())
		if err := s.Render(items); err != nil {
			errstr := err.Error()
			switch {
			case strings.Contains(errstr, "Surface timed out"): // skip frame
			case strings.Contains(errstr, "Surface is outdated"): // skip frame
			case strings.Contains(errstr, "Surface was lost"): // skip frame
			default:
				log.Fatal("render: ", err)
			}
			log.Println("render:", err)
		}

		frames++
		select {
		case <-report.C:
			log.Printf("fps %d, cubes %d", frames, session.Scene.Len())
			frames = 0
		default:
		}
	}
}
