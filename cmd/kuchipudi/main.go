package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/kuchipudi-engine/internal/app"
	"github.com/ayusman/kuchipudi-engine/internal/engine"
	"github.com/ayusman/kuchipudi-engine/internal/server"
	"github.com/ayusman/kuchipudi-engine/internal/store"
	"github.com/ayusman/kuchipudi-engine/internal/tray"
)

func main() {
	fmt.Println("Kuchipudi - Hand Pointer/Button Engine")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".kuchipudi")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "kuchipudi.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	configPath := filepath.Join(dataDir, "config.yaml")

	application := app.New(app.Config{
		Store:      st,
		PluginDir:  filepath.Join(dataDir, "plugins"),
		CameraID:   0,
		ConfigPath: configPath,
	})

	if err := application.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	if err := application.Start(); err != nil {
		log.Printf("Failed to start pipeline: %v", err)
	} else {
		application.SetEnabled(true)
		defer application.Stop()
	}

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	cam := application.Camera()
	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    &cam,
		Detector:  application.Detector(),
	})

	addr := ":8080"

	t := tray.New()
	t.OnToggle(func(enabled bool) { application.SetEnabled(enabled) })
	t.OnCalibrate(func() { application.StartCalibration(engine.RightHand) })
	t.OnSettings(func() { fmt.Printf("Open http://localhost%s in a browser\n", addr) })
	t.OnQuit(func() {
		application.Stop()
		os.Exit(0)
	})

	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.kuchipudi/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".kuchipudi", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
