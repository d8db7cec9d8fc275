// Command admin creates the first administrator: an identity account plus a
// directory record with role admin.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	_ "go.uber.org/automaxprocs"
	_ "time/tzdata"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"paroquia-backend/internal/bootstrap"
	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/repo"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "config file")
		email      = pflag.String("email", "", "admin email")
		password   = pflag.String("password", "", "admin password")
		name       = pflag.String("name", "", "admin display name")
	)
	pflag.Parse()
	if strings.TrimSpace(*email) == "" || *password == "" || strings.TrimSpace(*name) == "" {
		fmt.Fprintln(os.Stderr, "usage: admin --email E --password P --name N")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	rt, err := bootstrap.Open(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup:", err)
		os.Exit(1)
	}
	defer rt.Close()
	log := rt.Log

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := rt.Identity(ctx)
	if err != nil {
		log.Fatal("identity driver", zap.Error(err))
	}
	uid, err := ids.Provider.CreateAccount(ctx, domain.NewAccount{
		Email:         *email,
		Password:      *password,
		DisplayName:   *name,
		EmailVerified: true,
	})
	if err != nil {
		log.Fatal("create account", zap.Error(err))
	}

	rec := &domain.UserRecord{
		ID:       uid,
		Nome:     *name,
		Email:    *email,
		Role:     domain.RoleAdmin,
		Ativo:    true,
		CriadoEm: time.Now(),
	}
	if err := repo.NewDirectoryRepo(rt.DB).Create(ctx, rec); err != nil {
		log.Fatal("create admin record", zap.String("uid", uid), zap.Error(err))
	}
	log.Info("admin created", zap.String("uid", uid), zap.String("email", *email))
}
