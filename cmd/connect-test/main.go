// connect-test pings the configured spreadsheet endpoint and prints the
// classified outcome, for debugging a deployment without running the whole
// server.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"baketrack-backend/internal/relay"
	"baketrack-backend/internal/settings"
	"baketrack-backend/pkg/logging"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	urlFlag := flag.String("url", "", "endpoint URL to test (default: saved settings)")
	flag.Parse()

	// 2. Resolve target
	target := *urlFlag
	if target == "" {
		settingsPath := os.Getenv("BAKETRACK_SETTINGS")
		if settingsPath == "" {
			settingsPath = "baketrack_settings.json"
		}
		store, err := settings.Load(settingsPath, os.Getenv("GOOGLE_SCRIPT_URL"))
		if err != nil {
			log.Fatalf("❌ Failed to load settings: %v", err)
		}
		target = store.ScriptURL()
	}
	if target == "" {
		log.Fatal("❌ No endpoint URL configured. Pass -url or run the setup wizard.")
	}
	if !settings.ValidScriptURL(target) {
		log.Printf("⚠️  URL does not look like an Apps Script web app: %s", target)
	}

	// 3. Ping
	out := relay.New(logging.New()).Get(context.Background(), relay.AppendQuery(target, "action=getData"))
	if out.Status != 200 {
		if out.Raw != "" {
			log.Printf("Raw excerpt: %s", out.Raw)
		}
		log.Fatalf("❌ Connection failed (%d): %s", out.Status, out.ErrMsg)
	}

	log.Printf("✅ Success! Endpoint answered with %d bytes of JSON", len(out.JSON))
}
