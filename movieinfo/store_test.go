package movieinfo

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/fluxkit/database"
	"github.com/kbukum/fluxkit/logger"
)

func TestMigrations_SQLiteStore(t *testing.T) {
	cfg := database.Config{
		Enabled:  true,
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel: "silent",
		Migrate:  true,
	}
	cfg.ApplyDefaults()
	comp := database.NewComponent(cfg, logger.Nop()).WithMigrations(Migrations, "migrations")
	ctx := context.Background()
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	t.Cleanup(func() { _ = comp.Stop(ctx) })

	st := database.NewStore(comp.DB(), Identity, Resource, database.WithKeyColumn(KeyColumn))
	svc := NewService(st)
	for _, m := range sampleMovies() {
		if _, _, err := svc.Add(m).Block(ctx); err != nil {
			t.Fatalf("Add(%s) = %v", m.Name, err)
		}
	}

	got, ok, err := svc.GetByID("abc").Block(ctx)
	if err != nil || !ok {
		t.Fatalf("GetByID(abc) = %v, %v", ok, err)
	}
	if len(got.Cast) != 2 || got.Cast[1] != "Tom Hardy" || got.ReleaseDate != "2012-07-20" {
		t.Errorf("round trip = %+v", got)
	}

	all, err := svc.GetAll().Collect(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("GetAll() = %d, %v", len(all), err)
	}
	if all[0].Name != "Batman Begins" {
		t.Errorf("first = %q, want insertion order", all[0].Name)
	}

	if _, ok, err := svc.Update("abc", MovieInfo{Name: "Dark Knight Rises1", Year: 2012, Cast: []string{"Christian Bale"}}).Block(ctx); err != nil || !ok {
		t.Fatalf("Update() = %v, %v", ok, err)
	}
	if all, _ := svc.GetAll().Collect(ctx); len(all) != 3 {
		t.Errorf("update inserted a row: %d", len(all))
	}
	if _, _, err := svc.Delete("abc").Block(ctx); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	if _, ok, _ := svc.GetByID("abc").Block(ctx); ok {
		t.Error("deleted movie still present")
	}
}
