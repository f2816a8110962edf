package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/attendance/internal/app/models"
	appRepos "github.com/yigit/attendance/internal/app/repositories"
	"github.com/yigit/attendance/internal/db"
	"github.com/yigit/attendance/internal/pkg/apperrors"
	"github.com/yigit/attendance/internal/pkg/auth"
)

// Options describes the demo account created by CreateDefaultData
type Options struct {
	LecturerEmail    string
	LecturerPassword string
}

// normalized stores the email the way login looks it up
func (o Options) normalized() Options {
	o.LecturerEmail = strings.ToLower(strings.TrimSpace(o.LecturerEmail))
	return o
}

func defaultCourses() []appModels.Course {
	return []appModels.Course{
		{CourseName: "Introduction to Computing", CourseCode: "CSC101", Level: "100", Day: "Monday", Time: "9:00 - 11:00"},
		{CourseName: "Data Structures", CourseCode: "CSC201", Level: "200", Day: "Wednesday", Time: "12:00 - 14:00"},
	}
}

// CreateDefaultData creates a demo lecturer with two courses if the lecturer doesn't exist.
// Everything is written in one transaction; an existing lecturer means the seed already ran.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, hasher *auth.PasswordHasher, opts Options, lgr zerolog.Logger) error {
	opts = opts.normalized()
	lgr.Info().Str("email", opts.LecturerEmail).Msg("Checking/Creating default data (demo lecturer and courses)...")

	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := appRepos.NewRepositories(tx)

		_, err := repos.LecturerRepository.GetByEmail(ctx, opts.LecturerEmail)
		if err == nil {
			lgr.Info().Msg("Default data already present, skipping")
			return nil
		}
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			return fmt.Errorf("error looking up demo lecturer: %w", err)
		}

		hash, err := hasher.Hash(opts.LecturerPassword)
		if err != nil {
			return fmt.Errorf("error hashing demo lecturer password: %w", err)
		}

		lecturer := &appModels.Lecturer{
			FirstName:    "Demo",
			LastName:     "Lecturer",
			Email:        opts.LecturerEmail,
			PasswordHash: hash,
		}
		if err := repos.LecturerRepository.Create(ctx, lecturer); err != nil {
			return fmt.Errorf("error creating demo lecturer: %w", err)
		}

		for _, course := range defaultCourses() {
			course := course
			course.LecturerID = lecturer.ID
			if err := repos.CourseRepository.Create(ctx, &course); err != nil {
				return fmt.Errorf("error creating course %s: %w", course.CourseCode, err)
			}
		}

		lgr.Info().Str("lecturerID", lecturer.ID.String()).Msg("Default data created")
		return nil
	})
}
