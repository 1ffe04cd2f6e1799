package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/challenges"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	seed := flag.Bool("seed", false, "seed the workout catalog, nutrition tips and challenges")
	timeout := flag.Duration("timeout", 2*time.Minute, "max duration of the whole migration")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("FITTRACK_POSTGRES_PASS"),
		MaxConns:   2,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	if err := db.ApplySchema(ctx, dbPool); err != nil {
		log.Fatalf("%s", err)
	}
	log.Infoln("schema applied")

	if !*seed {
		return
	}

	seedData, err := catalog.DefaultSeed()
	if err != nil {
		log.Fatalf("load catalog seed: %s", err)
	}
	if err := catalog.Seed(ctx, catalog.NewRepo(dbPool), seedData); err != nil {
		log.Fatalf("seed catalog: %s", err)
	}
	log.Infof("catalog seeded: %d workouts, %d nutrition tips", len(seedData.Workouts), len(seedData.NutritionTips))

	defaultChallenges := challenges.DefaultChallenges(time.Now())
	if err := challenges.Seed(ctx, challenges.NewRepo(dbPool), defaultChallenges); err != nil {
		log.Fatalf("seed challenges: %s", err)
	}
	log.Infof("challenges seeded: %d", len(defaultChallenges))
}
