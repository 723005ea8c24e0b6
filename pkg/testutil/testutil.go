// Package testutil provides the shared database fixture for service tests.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/tierlab/ranklist/internal/db"
	"github.com/tierlab/ranklist/pkg/logger/mocklogger"
	"github.com/tierlab/ranklist/pkg/service/scontributor"
	"github.com/tierlab/ranklist/pkg/service/screator"
	"github.com/tierlab/ranklist/pkg/service/sitem"
)

type BaseDB struct {
	DB  *sql.DB
	Log *slog.Logger

	LogHandler *mocklogger.MockHandler

	t       *testing.T
	cleanup func()
}

type BaseServices struct {
	DB  *sql.DB
	Is  sitem.ItemService
	Cs  scontributor.ContributorService
	Crs screator.CreatorService
}

// CreateBaseDB opens a fresh in-memory database with the schema applied.
func CreateBaseDB(ctx context.Context, t *testing.T) *BaseDB {
	t.Helper()
	conn, cleanup, err := db.OpenMem(ctx)
	if err != nil {
		t.Fatal(err)
	}
	log, handler := mocklogger.NewMockLogger()
	return &BaseDB{DB: conn, Log: log, LogHandler: handler, t: t, cleanup: cleanup}
}

func (b *BaseDB) GetBaseServices() BaseServices {
	return BaseServices{
		DB:  b.DB,
		Is:  sitem.New(b.DB, b.Log),
		Cs:  scontributor.New(b.DB),
		Crs: screator.New(b.DB),
	}
}

func (b *BaseDB) Close() {
	b.cleanup()
}
