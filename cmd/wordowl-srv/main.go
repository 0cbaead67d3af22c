package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/wordowl-games/wordowl/internal/cache"
	"github.com/wordowl-games/wordowl/internal/database"
	identitydb "github.com/wordowl-games/wordowl/internal/database/identity/database"
	identitymodel "github.com/wordowl-games/wordowl/internal/database/identity/model"
	statedb "github.com/wordowl-games/wordowl/internal/database/mirrorstate/database"
	"github.com/wordowl-games/wordowl/internal/logging"
	"github.com/wordowl-games/wordowl/internal/panel"
	"github.com/wordowl-games/wordowl/internal/server"
	"github.com/wordowl-games/wordowl/internal/shutdown"
	"github.com/wordowl-games/wordowl/internal/wordowl"
	"github.com/wordowl-games/wordowl/internal/wordowl/api"
	"github.com/wordowl-games/wordowl/internal/wordowl/game"
	"github.com/wordowl-games/wordowl/internal/wordowl/resource"
	"golang.org/x/sync/errgroup"
)

func main() {
	fmt.Print(resource.Graffiti)
	fmt.Printf(resource.GreetingCLI, resource.ProjectName, resource.ProjectVersion, resource.GithubURL)

	var config wordowl.Config
	if err := envconfig.Process("", &config); err != nil {
		fmt.Fprintf(os.Stderr, "process the config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(config.Debug)
	defer logger.Sync() // nolint

	ctx, cancel := shutdown.New()
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, config); err != nil {
		logger.Fatal(err)
	}

	logger.Infof("shutdown complete")
}

func realMain(ctx context.Context, config wordowl.Config) error {
	logger := logging.FromContext(ctx)

	db, err := database.NewFromEnv(ctx, &config.Db)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close(ctx) // nolint

	identityCache, err := cache.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("creating identity cache: %w", err)
	}

	client := api.NewClient(api.Config{
		BaseURL: config.APIBaseURL,
		Timeout: config.APITimeout,
	})

	if err := ensureIdentity(ctx, config, identitydb.New(db, identityCache), client); err != nil {
		return fmt.Errorf("ensuring device identity: %w", err)
	}

	session := game.NewSession(client)
	manager := wordowl.NewManager(config, session, client, statedb.New(db))

	panelSrv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("creating panel server: %w", err)
	}

	profSrv, err := server.New(config.ProfPort)
	if err != nil {
		return fmt.Errorf("creating profiler server: %w", err)
	}

	logger.Infof("panel listening on %s, profiler on %s", panelSrv.Addr(), profSrv.Addr())

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return manager.Run(ctx)
	})

	group.Go(func() error {
		return panelSrv.ServeHTTP(ctx, &http.Server{
			Handler: panel.New(manager).Routes(ctx),
		})
	})

	group.Go(func() error {
		return profSrv.ServeHTTP(ctx, &http.Server{Handler: profHandler(ctx)})
	})

	return group.Wait()
}

// ensureIdentity loads the persisted device registration, registering with
// the puzzle service on first run, and points the api client at its key.
func ensureIdentity(ctx context.Context, config wordowl.Config, identities *identitydb.DB, client *api.Client) error {
	logger := logging.FromContext(ctx).Named("main.ensureIdentity")

	identity, err := identities.Fetch()
	switch {
	case errors.Is(err, identitydb.NotFoundErr):
		logger.Infof("no device identity found, registering %q", config.DeviceName)

		registered, err := client.RegisterDevice(ctx, config.DeviceName)
		if err != nil {
			return fmt.Errorf("register device: %w", err)
		}

		identity = identitymodel.Identity{
			APIKey:       registered.APIKey,
			UserID:       registered.User.ID,
			Username:     registered.User.Username,
			DisplayName:  registered.User.DisplayName,
			DeviceName:   config.DeviceName,
			RegisteredAt: time.Now(),
		}
		if err := identities.Store(identity); err != nil {
			return fmt.Errorf("store identity: %w", err)
		}
	case err != nil:
		return fmt.Errorf("fetch identity: %w", err)
	default:
		client.SetAPIKey(identity.APIKey)
	}

	if config.DisplayName != "" && config.DisplayName != identity.DisplayName {
		user, err := client.SetDisplayName(ctx, config.DisplayName)
		if err != nil {
			// not fatal, the old name keeps working
			logger.Errorf("failed to set display name: %v", err)
			return nil
		}

		identity.DisplayName = user.DisplayName
		if err := identities.Store(identity); err != nil {
			return fmt.Errorf("store identity: %w", err)
		}
	}

	return nil
}

func profHandler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthz", server.HandleHealth(ctx))
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
