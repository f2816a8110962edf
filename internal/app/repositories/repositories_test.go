package repositories_test

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yigit/attendance/internal/app/migrations"
	"github.com/yigit/attendance/internal/app/models"
	"github.com/yigit/attendance/internal/app/repositories"
	"github.com/yigit/attendance/internal/db"
	"github.com/yigit/attendance/internal/pkg/apperrors"
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping Postgres repository tests. Use -short=false to run them.")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// setupTestDB starts a throwaway Postgres, applies migrations and returns repositories on it
func setupTestDB(t *testing.T) (*repositories.Repositories, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "attendance",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := db.NewPostgresDB(ctx, db.PoolConfig{ConnString: dsn, MaxConns: 5}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, migrations.NewMigrator(database.Pool, zerolog.Nop()).Up(ctx, migrations.Files()))
	// second run is a no-op
	require.NoError(t, migrations.NewMigrator(database.Pool, zerolog.Nop()).Up(ctx, migrations.Files()))

	cleanup := func() {
		database.Close()
		_ = container.Terminate(ctx)
	}
	return repositories.NewRepositories(database.Pool), cleanup
}

func newLecturer(email string) *models.Lecturer {
	return &models.Lecturer{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        email,
		PasswordHash: "$2a$08$hash",
	}
}

func TestRepositories(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("lecturer create and duplicate email", func(t *testing.T) {
		l := newLecturer("grace@example.com")
		require.NoError(t, repos.LecturerRepository.Create(ctx, l))
		assert.NotEqual(t, uuid.Nil, l.ID)

		err := repos.LecturerRepository.Create(ctx, newLecturer("grace@example.com"))
		assert.ErrorIs(t, err, apperrors.ErrConflict)

		got, err := repos.LecturerRepository.GetByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", got.Email)
		assert.Empty(t, got.PasswordHash)

		withPw, err := repos.LecturerRepository.GetByEmailWithPassword(ctx, "grace@example.com")
		require.NoError(t, err)
		assert.Equal(t, "$2a$08$hash", withPw.PasswordHash)
	})

	t.Run("lecturer missing", func(t *testing.T) {
		_, err := repos.LecturerRepository.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

		err = repos.LecturerRepository.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("otp set, consume once, expiry honoured", func(t *testing.T) {
		l := newLecturer("otp@example.com")
		require.NoError(t, repos.LecturerRepository.Create(ctx, l))

		now := time.Now().UTC()
		require.NoError(t, repos.LecturerRepository.SetOTP(ctx, l.ID, "123456", now.Add(10*time.Minute)))

		stored, err := repos.LecturerRepository.GetByIDWithPassword(ctx, l.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.OTP)
		assert.Equal(t, "123456", *stored.OTP)

		// expired from the point of view of a clock 11 minutes ahead
		_, err = repos.LecturerRepository.ConsumeOTP(ctx, "123456", "new-hash", now.Add(11*time.Minute))
		assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

		got, err := repos.LecturerRepository.ConsumeOTP(ctx, "123456", "new-hash", now)
		require.NoError(t, err)
		assert.Equal(t, l.ID, got.ID)

		_, err = repos.LecturerRepository.ConsumeOTP(ctx, "123456", "other-hash", now)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

		after, err := repos.LecturerRepository.GetByIDWithPassword(ctx, l.ID)
		require.NoError(t, err)
		assert.Nil(t, after.OTP)
		assert.Nil(t, after.OTPExpiresAt)
		assert.Equal(t, "new-hash", after.PasswordHash)
	})

	t.Run("otp clear", func(t *testing.T) {
		l := newLecturer("clear@example.com")
		require.NoError(t, repos.LecturerRepository.Create(ctx, l))
		require.NoError(t, repos.LecturerRepository.SetOTP(ctx, l.ID, "654321", time.Now().Add(time.Minute)))
		require.NoError(t, repos.LecturerRepository.ClearOTP(ctx, l.ID))

		after, err := repos.LecturerRepository.GetByIDWithPassword(ctx, l.ID)
		require.NoError(t, err)
		assert.Nil(t, after.OTP)
	})

	t.Run("students", func(t *testing.T) {
		s := &models.Student{
			FirstName:    "Alan",
			LastName:     "Turing",
			Email:        "alan@example.com",
			MatricNumber: "CSC12345",
			Level:        "300",
			Gender:       "male",
			Images:       []string{"img/1.png"},
		}
		require.NoError(t, repos.StudentRepository.Create(ctx, s))

		dup := *s
		dup.ID = uuid.Nil
		dup.MatricNumber = "CSC99999"
		assert.ErrorIs(t, repos.StudentRepository.Create(ctx, &dup), apperrors.ErrConflict)

		got, err := repos.StudentRepository.GetByMatricNumber(ctx, "CSC12345")
		require.NoError(t, err)
		assert.Equal(t, []string{"img/1.png"}, got.Images)

		all, err := repos.StudentRepository.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		_, err = repos.StudentRepository.GetByMatricNumber(ctx, "NOPE0000")
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("courses are ownership scoped", func(t *testing.T) {
		owner := newLecturer("owner@example.com")
		other := newLecturer("other@example.com")
		require.NoError(t, repos.LecturerRepository.Create(ctx, owner))
		require.NoError(t, repos.LecturerRepository.Create(ctx, other))

		c := &models.Course{
			CourseName: "Operating Systems",
			CourseCode: "CSC301",
			Level:      "300",
			Day:        "Monday",
			Time:       "10:00",
			LecturerID: owner.ID,
		}
		require.NoError(t, repos.CourseRepository.Create(ctx, c))

		dup := *c
		dup.ID = uuid.Nil
		assert.ErrorIs(t, repos.CourseRepository.Create(ctx, &dup), apperrors.ErrConflict)

		got, err := repos.CourseRepository.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Grace", got.LecturerFirstName)

		byLevel, err := repos.CourseRepository.ListByLevel(ctx, "300")
		require.NoError(t, err)
		assert.Len(t, byLevel, 1)

		byLecturer, err := repos.CourseRepository.ListByLecturer(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, byLecturer)

		newTime := "14:00"
		_, err = repos.CourseRepository.UpdateOwned(ctx, c.ID, other.ID, models.CourseChanges{Time: &newTime})
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		assert.ErrorIs(t, repos.CourseRepository.DeleteOwned(ctx, c.ID, other.ID), apperrors.ErrResourceNotFound)

		updated, err := repos.CourseRepository.UpdateOwned(ctx, c.ID, owner.ID, models.CourseChanges{Time: &newTime})
		require.NoError(t, err)
		assert.Equal(t, "14:00", updated.Time)

		// deleting the owner cascades to their courses
		require.NoError(t, repos.LecturerRepository.Delete(ctx, owner.ID))
		_, err = repos.CourseRepository.GetByID(ctx, c.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}
