// @title ExamMaster API
// @version 1.0
// @description Test-taking, scoring and review scheduling service.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"exammaster_backend/internal/app"
	"exammaster_backend/internal/config"
	"exammaster_backend/internal/seed"
	"exammaster_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on start, even in release mode")
	seedFile := flag.String("seed", "", "load questions and tests from a YAML file and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly || *seedFile != ""
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	if *seedFile != "" {
		f, err := seed.LoadFile(*seedFile)
		if err != nil {
			log.Fatalf("Failed to load seed: %v", err)
		}
		res, err := seed.Apply(context.Background(), application.Services.Catalog, f)
		if err != nil {
			log.Fatalf("Failed to apply seed: %v", err)
		}
		log.Printf("Seeded %d questions and %d tests", len(res.QuestionIDs), len(res.TestIDs))
		return
	}

	application.Run()
}
