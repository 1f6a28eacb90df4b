package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ridepilot/api"
	"ridepilot/config"
	"ridepilot/pkg/logger"
	"ridepilot/pkg/portal"
	"ridepilot/storage/postgres"
)

func main() {
	driverID := flag.String("driver", "", "driver uuid whose magic link is rotated")
	issue := flag.String("issue-jwt", "", "print a dispatcher token for this subject instead of rotating")
	role := flag.String("role", api.RoleDispatcher, "role claim for -issue-jwt")
	ttl := flag.Duration("ttl", 12*time.Hour, "lifetime for -issue-jwt")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer log.Sync()

	if *issue != "" {
		if cfg.DispatcherJWTSecret == "" {
			log.Error("DISPATCHER_JWT_SECRET is not set")
			os.Exit(1)
		}
		token, err := api.IssueDispatcherToken(cfg.DispatcherJWTSecret, *issue, *role, *ttl)
		if err != nil {
			log.Error("Failed to sign dispatcher token", logger.Error(err))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if *driverID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := postgres.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pg.Close()

	token, err := pg.Driver().RotateToken(ctx, *driverID)
	if err != nil {
		log.Error("Failed to rotate token", logger.String("driver", *driverID), logger.Error(err))
		os.Exit(1)
	}
	if token == "" {
		log.Error("Driver not found", logger.String("driver", *driverID))
		os.Exit(1)
	}

	link, err := portal.MagicLink(cfg.PortalBaseURL, token)
	if err != nil {
		log.Error("Failed to build magic link", logger.Error(err))
		os.Exit(1)
	}
	log.Info("Successfully rotated driver token", logger.String("driver", *driverID))
	fmt.Println(link)
}
