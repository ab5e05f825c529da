// donatectl is a terminal front-end for the donation-tracking backend: login,
// session inspection, donation entry/listing, and admin user management.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/opendaan/donation-client/internal/core/domain"
	"github.com/opendaan/donation-client/internal/core/ports"
	"github.com/opendaan/donation-client/internal/core/service"
	"github.com/opendaan/donation-client/internal/infrastructure/backend"
	"github.com/opendaan/donation-client/internal/infrastructure/store"
	"github.com/opendaan/donation-client/internal/pkg/config"
	"github.com/opendaan/donation-client/pkg/logger"
)

const usage = `usage: donatectl <command> [args]

commands:
  login <First_Last> <password>        authenticate and store the token
  logout                               clear the session
  whoami                               show the current session
  clear                                wipe all local state
  health                               probe backend health
  info                                 show backend app info
  donations list <year>                list donations for a year
  donations all                        list all donations (admin)
  donations add <name> <address> <phone> <amount> [type] [notes]
  donations delete <year> <id>         delete a donation (admin)
  donations years                      list available years
  donations stats <year>               show year statistics
  users list                           list active users (admin)
  users deactivate <first> <last>      deactivate a user (admin)
  users passwd <first> <last> <new>    update a user's password (admin)
  watch                                keep validating the session periodically
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := newTokenStore(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("token store init failed")
		os.Exit(1)
	}

	gateway := backend.New(cfg.BaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, tokens, log)
	session := service.NewSessionService(gateway, tokens, log)
	donations := service.NewDonationService(gateway, session, log)
	users := service.NewUserService(gateway, session, log)

	session.Restore(ctx)

	app := &app{
		session:   session,
		donations: donations,
		users:     users,
		gateway:   gateway,
		cfg:       cfg,
	}
	if err := app.run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, error) {
	switch cfg.Token.Store {
	case "redis":
		client, err := store.Connect(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return store.NewRedisTokenStore(client, cfg.Redis.Device), nil
	default:
		return store.NewFileTokenStore(cfg.Token.Path, cfg.Token.Secret)
	}
}

type app struct {
	session   *service.SessionService
	donations *service.DonationService
	users     *service.UserService
	gateway   ports.Gateway
	cfg       *config.Config
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: donatectl login <First_Last> <password>")
		}
		out := a.session.Login(ctx, args[1], args[2])
		if !out.Success {
			return fmt.Errorf("%s", out.Error)
		}
		fmt.Printf("Logged in as %s (%s)\n", out.User.DisplayName(), out.User.Role)
		return nil

	case "logout":
		return a.session.Logout(ctx)

	case "whoami":
		return printJSON(a.session.Snapshot())

	case "clear":
		return a.session.ClearStorage(ctx)

	case "health":
		if a.gateway.Reachable(ctx) {
			fmt.Println("Backend is UP")
			return nil
		}
		return fmt.Errorf("backend is not available")

	case "info":
		res := a.gateway.AppInfo(ctx)
		if !res.Success {
			return fmt.Errorf("%s", res.Err)
		}
		var info domain.AppInfo
		if err := res.Decode(&info); err != nil {
			return err
		}
		return printJSON(info)

	case "donations":
		return a.runDonations(ctx, args[1:])

	case "users":
		return a.runUsers(ctx, args[1:])

	case "watch":
		interval := a.cfg.SessionCheckInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		monitor := service.NewSessionMonitor(a.session, interval, logger.Get())
		monitor.Start(ctx)
		fmt.Println("Watching session; press Ctrl-C to stop")
		<-ctx.Done()
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) runDonations(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: donatectl donations <list|all|add|delete|years|stats>")
	}

	switch args[0] {
	case "list":
		if len(args) != 2 {
			return fmt.Errorf("usage: donatectl donations list <year>")
		}
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[1])
		}
		list, err := a.donations.ByYear(ctx, year)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "all":
		list, err := a.donations.All(ctx)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "add":
		if len(args) < 5 {
			return fmt.Errorf("usage: donatectl donations add <name> <address> <phone> <amount> [type] [notes]")
		}
		amount, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[4])
		}
		in := domain.DonationInput{
			DonorName:      args[1],
			DonorAddress:   args[2],
			DonorPhone:     args[3],
			DonationAmount: amount,
		}
		if len(args) > 5 {
			in.DonationType = args[5]
		}
		if len(args) > 6 {
			in.Notes = args[6]
		}
		created, err := a.donations.Create(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(created)

	case "delete":
		if len(args) != 3 {
			return fmt.Errorf("usage: donatectl donations delete <year> <id>")
		}
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[1])
		}
		id, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[2])
		}
		return a.donations.Delete(ctx, year, id)

	case "years":
		years, err := a.donations.Years(ctx)
		if err != nil {
			return err
		}
		return printJSON(years)

	case "stats":
		if len(args) != 2 {
			return fmt.Errorf("usage: donatectl donations stats <year>")
		}
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[1])
		}
		stats, err := a.donations.Stats(ctx, year)
		if err != nil {
			return err
		}
		return printJSON(stats)

	default:
		return fmt.Errorf("unknown donations command %q", args[0])
	}
}

func (a *app) runUsers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: donatectl users <list|deactivate|passwd>")
	}

	switch args[0] {
	case "list":
		users, err := a.users.GetAllUsers(ctx)
		if err != nil {
			return err
		}
		return printJSON(users)

	case "deactivate":
		if len(args) != 3 {
			return fmt.Errorf("usage: donatectl users deactivate <first> <last>")
		}
		return a.users.Deactivate(ctx, args[1], args[2])

	case "passwd":
		if len(args) != 4 {
			return fmt.Errorf("usage: donatectl users passwd <first> <last> <new-password>")
		}
		return a.users.UpdatePassword(ctx, args[1], args[2], args[3])

	default:
		return fmt.Errorf("unknown users command %q", args[0])
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
