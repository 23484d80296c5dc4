// README: Migration runner; applies or rolls back the schema in migrations/.
package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"carpool/internal/config"
	"carpool/internal/infra"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 1, "migrations to roll back with -down; 0 rolls back everything")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	infra.SetupLogger(cfg.Log.Level, cfg.Log.File)

	if err := infra.WaitForDB(cfg.DB.DSN, 10, 3*time.Second); err != nil {
		logrus.Fatal(err)
	}

	if *down {
		if err := infra.MigrateDown(cfg.DB.DSN, cfg.DB.MigrationsPath, *steps); err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("steps", *steps).Info("migrations rolled back")
		return
	}
	if err := infra.Migrate(cfg.DB.DSN, cfg.DB.MigrationsPath); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("migrations applied")
}
