package testutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/taskbox/taskbox/internal/database"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireDatabase opens a throwaway file-backed sqlite database in a
// temp dir and runs the given setup functions against it. The cleanup
// closes the pool and removes the directory.
func AcquireDatabase(ctx context.Context, t TestLog, setup ...func(context.Context, *database.DB) error) (*database.DB, func()) {
	dir, err := os.MkdirTemp("", "taskbox-tests")
	if err != nil {
		t.Fatal(err)
	}
	db, err := database.Open(ctx, "sqlite://"+filepath.Join(dir, "taskbox.db"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	for _, fn := range setup {
		if err := fn(ctx, db); err != nil {
			db.Close()
			os.RemoveAll(dir)
			t.Fatal(err)
		}
	}
	return db, func() {
		err := db.Close()
		if err != nil {
			t.Log("unable to close database", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
