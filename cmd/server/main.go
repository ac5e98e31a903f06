package main

import (
	"context"
	"log"
	"os"

	"github.com/rawblock/esopforge/internal/api"
	"github.com/rawblock/esopforge/internal/benchwatch"
	"github.com/rawblock/esopforge/internal/db"
	"github.com/rawblock/esopforge/internal/jobs"
)

func main() {
	log.Println("Starting ESOP Forge (AIG collapse / PSDKRO+EXORCISM synthesis engine)...")

	// ─── Environment Variables ──────────────────────────────────────────
	// All configuration comes from environment variables; none is
	// required. DATABASE_URL is optional (without it there is no
	// persistence) and PORT defaults to 5339. No fallback defaults exist
	// for security-sensitive values.
	// ────────────────────────────────────────────────────────────────────

	var dbConn *db.PostgresStore
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		conn, err := db.Connect(dbURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to PostgreSQL, continuing without persistence. Error: %v", err)
		} else {
			dbConn = conn
			defer dbConn.Close()
			if err := dbConn.InitSchema(); err != nil {
				log.Printf("Warning: DB schema init failed: %v", err)
			}
		}
	} else {
		log.Println("DATABASE_URL not set — running without job/baseline persistence")
	}

	// Setup WebSocket Hub
	wsHub := api.NewHub()
	go wsHub.Run()

	jobMgr := jobs.NewManager()

	watchlist := benchwatch.New(func(alert benchwatch.Alert) {
		wsHub.Broadcast(alertJSON(alert))
	})
	if dbConn != nil {
		if baselines, err := dbConn.LoadBaselines(context.Background()); err != nil {
			log.Printf("Warning: failed to warm-load benchmark baselines: %v", err)
		} else {
			for _, b := range baselines {
				watchlist.SetBaseline(b.Name, b.CubeCounts)
			}
			if len(baselines) > 0 {
				log.Printf("Warm-loaded %d benchmark baselines", len(baselines))
			}
		}
	}

	r := api.SetupRouter(dbConn, wsHub, jobMgr, watchlist)

	port := getEnvOrDefault("PORT", "5339")

	log.Printf("Engine running on :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func alertJSON(a benchwatch.Alert) []byte {
	return []byte(`{"type":"regression_alert","id":"` + a.ID + `","title":"` + a.Title + `"}`)
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
