package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/denizatik/edutrack/internal/app/models"
	appRepos "github.com/denizatik/edutrack/internal/app/repositories"
	"github.com/denizatik/edutrack/internal/pkg/apperrors"
	pkgAuth "github.com/denizatik/edutrack/internal/pkg/auth"
)

// CreateDefaultData creates demo accounts for local development if they
// don't exist. Never called in production mode.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (demo accounts)...")
	var finalErr error

	demoAccounts := []struct {
		username string
		password string
		role     appModels.RoleType
	}{
		{username: "demo.teacher", password: "teacher-pass-1", role: appModels.RoleTeacher},
		{username: "demo.student", password: "student-pass-1", role: appModels.RoleStudent},
	}

	for _, account := range demoAccounts {
		hashed, err := pkgAuth.HashPassword(account.password)
		if err != nil {
			lgr.Error().Err(err).Str("username", account.username).Msg("Error hashing demo account password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Username: account.username,
			Password: hashed,
			RoleType: account.role,
		}
		if _, err := userRepo.CreateUser(ctx, user); err != nil {
			if errors.Is(err, apperrors.ErrUsernameExists) {
				continue
			}
			lgr.Error().Err(err).Str("username", account.username).Msg("Error creating demo account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("username", account.username).Str("role", string(account.role)).Msg("Demo account created")
	}

	return finalErr
}
