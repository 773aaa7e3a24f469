//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/packhouse/backend/internal/model"
	repo "github.com/packhouse/backend/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "packhouse_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/packhouse_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	userID := uuid.New()

	t.Run("account_repository", func(t *testing.T) {
		ar := repo.NewAccountRepository(conn)
		a := model.Account{
			ID:           userID,
			Email:        "worker@packhouse.test",
			PasswordHash: []byte("$2a$10$hash"),
			DisplayName:  "Worker",
			PhotoName:    "worker.png",
		}
		saved, err := ar.Create(ctx, a)
		require.NoError(t, err)
		require.Equal(t, a.ID, saved.ID)
		require.False(t, saved.CreatedAt.IsZero())

		byEmail, err := ar.GetByEmail(ctx, a.Email)
		require.NoError(t, err)
		require.Equal(t, a.ID, byEmail.ID)

		_, err = ar.GetByEmail(ctx, "missing@packhouse.test")
		require.ErrorIs(t, err, model.ErrNotFound)

		require.NoError(t, ar.UpdateProfileFields(ctx, a.ID, "Renamed", "new.png"))
		byID, err := ar.GetByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, "Renamed", byID.DisplayName)
		require.Equal(t, "new.png", byID.PhotoName)
	})

	t.Run("profile_repository", func(t *testing.T) {
		pr := repo.NewProfileRepository(conn)
		p := model.Profile{
			UserID:      userID,
			DisplayName: "Worker",
			Email:       "worker@packhouse.test",
			PhotoName:   "worker.png",
		}
		saved, err := pr.Create(ctx, p)
		require.NoError(t, err)
		require.Equal(t, userID, saved.UserID)

		got, err := pr.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, "Worker", got.DisplayName)

		p.DisplayName = "Renamed"
		require.NoError(t, pr.Update(ctx, p))

		require.NoError(t, pr.Delete(ctx, userID))
		require.ErrorIs(t, pr.Delete(ctx, userID), model.ErrNotFound)
		_, err = pr.GetByUserID(ctx, userID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("file_repository", func(t *testing.T) {
		fr := repo.NewFileRepository(conn)

		var ids []uuid.UUID
		for i, name := range []string{"invoice.pdf", "packing-list.xlsx", "invoice.pdf"} {
			rec := model.FileRecord{
				UserID:      userID,
				Name:        name,
				Size:        int64(100 + i),
				ContentType: "application/octet-stream",
				URL:         "http://localhost:9000/" + name,
				StoragePath: model.ObjectPath(userID, name),
				UploadedAt:  time.Now(),
			}
			saved, err := fr.Create(ctx, rec)
			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, saved.ID)
			ids = append(ids, saved.ID)
			time.Sleep(10 * time.Millisecond)
		}

		// Duplicate names share a storage path but keep distinct records.
		records, err := fr.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.Equal(t, records[0].StoragePath, records[2].StoragePath)

		// Newest first.
		require.Equal(t, ids[2], records[0].ID)
		require.Equal(t, ids[1], records[1].ID)
		require.Equal(t, ids[0], records[2].ID)

		require.NoError(t, fr.Delete(ctx, ids[0], userID))
		require.ErrorIs(t, fr.Delete(ctx, ids[0], userID), model.ErrNotFound)

		records, err = fr.GetByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, records, 2)

		// Unknown user lists empty, not an error.
		empty, err := fr.GetByUserID(ctx, uuid.New())
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("account_delete", func(t *testing.T) {
		ar := repo.NewAccountRepository(conn)
		require.NoError(t, ar.Delete(ctx, userID))
		require.ErrorIs(t, ar.Delete(ctx, userID), model.ErrNotFound)
	})
}
