// Command care-admin runs operator tasks against the care-app database.
//
//	care-admin promote -email someone@example.org
//	care-admin list-users
//	care-admin migrate
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"care-app-go/internal/config"
	"care-app-go/internal/db"
	"care-app-go/internal/domain/apperr"
	userdomain "care-app-go/internal/domain/user"
	userrepo "care-app-go/internal/repository/postgres/user"
	"care-app-go/pkg/logger"
	"gorm.io/gorm"
)

const commandTimeout = 30 * time.Second

var errUsage = errors.New("usage")

func main() {
	log := logger.NewFromEnv().With("component", "care-admin")
	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Critical("care-admin: command failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, log logger.Logger) error {
	if len(args) == 0 {
		printUsage(out)
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "promote":
		fs := flag.NewFlagSet("promote", flag.ContinueOnError)
		fs.SetOutput(out)
		email := fs.String("email", "", "email of the profile to promote to ADMIN")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		if *email == "" {
			fmt.Fprintln(out, "promote: -email is required")
			return errUsage
		}
		return withDB(log, func(ctx context.Context, gormDB *gorm.DB) error {
			return promote(ctx, userdomain.NewService(userrepo.NewPostgres(gormDB)), *email, out)
		})
	case "list-users":
		return withDB(log, func(ctx context.Context, gormDB *gorm.DB) error {
			return listUsers(ctx, userdomain.NewService(userrepo.NewPostgres(gormDB)), out)
		})
	case "migrate":
		return withDB(log, func(ctx context.Context, gormDB *gorm.DB) error {
			applied, err := db.Migrate(gormDB.WithContext(ctx), log)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "applied %d migration(s)\n", applied)
			return nil
		})
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(out, "unknown command %q\n", command)
		printUsage(out)
		return errUsage
	}
}

func withDB(log logger.Logger, fn func(ctx context.Context, gormDB *gorm.DB) error) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	gormDB, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return fn(ctx, gormDB)
}

type userAdmin interface {
	PromoteByEmail(ctx context.Context, email string) (*userdomain.Profile, bool, error)
	ListProfiles(ctx context.Context) ([]userdomain.Profile, error)
}

func promote(ctx context.Context, users userAdmin, email string, out io.Writer) error {
	profile, changed, err := users.PromoteByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindNotFound {
			return err
		}
		fmt.Fprintf(out, "no profile with email %s; the user must sign in once first. Known profiles:\n", email)
		if listErr := listUsers(ctx, users, out); listErr != nil {
			return listErr
		}
		return err
	}

	if !changed {
		fmt.Fprintf(out, "%s is already ADMIN\n", profile.Email)
		return nil
	}
	fmt.Fprintf(out, "%s promoted to ADMIN\n", profile.Email)
	return nil
}

func listUsers(ctx context.Context, users userAdmin, out io.Writer) error {
	profiles, err := users.ListProfiles(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tROLE\tCREATED")
	for _, profile := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", profile.ID, profile.Email, profile.Role, profile.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `usage: care-admin <command> [flags]

commands:
  promote -email <addr>   grant the ADMIN role to an existing profile
  list-users              print all profiles
  migrate                 apply pending SQL migrations`)
}
