// Package storetest holds the conformance suite every AsyncStore driver
// runs against.
package storetest

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/store"
)

// Record is the fixture type stored by the suite. Its tags cover every
// driver's mapping.
type Record struct {
	ID   string   `json:"id" bson:"_id" gorm:"primaryKey;column:id"`
	Name string   `json:"name" bson:"name" gorm:"column:name"`
	Tags []string `json:"tags" bson:"tags" gorm:"column:tags;serializer:json"`
}

// TableName is the table used by the gorm driver.
func (Record) TableName() string { return "records" }

// Identity maps Record IDs.
var Identity = store.Identity[Record]{
	ID:     func(r Record) string { return r.ID },
	WithID: func(r Record, id string) Record { r.ID = id; return r },
}

// Run exercises newStore against the AsyncStore contract. newStore must
// return an empty store on every call.
func Run(t *testing.T, newStore func(t *testing.T) store.AsyncStore[Record]) {
	t.Helper()

	t.Run("save assigns id and find returns it", func(t *testing.T) {
		s := newStore(t)
		saved := mustValue(t, s.Save(Record{Name: "Batman Begins", Tags: []string{"bale"}}))
		if saved.ID == "" {
			t.Fatal("Save did not assign an ID")
		}
		found := mustValue(t, s.FindByID(saved.ID))
		if found.Name != "Batman Begins" || !slices.Equal(found.Tags, []string{"bale"}) {
			t.Errorf("FindByID = %+v", found)
		}
	})

	t.Run("save keeps explicit id and replaces", func(t *testing.T) {
		s := newStore(t)
		mustValue(t, s.Save(Record{ID: "abc", Name: "first"}))
		mustValue(t, s.Save(Record{ID: "abc", Name: "second"}))

		all := mustCollect(t, s)
		if len(all) != 1 || all[0].Name != "second" {
			t.Errorf("FindAll after replace = %+v", all)
		}
	})

	t.Run("find all", func(t *testing.T) {
		s := newStore(t)
		if got := mustCollect(t, s); len(got) != 0 {
			t.Fatalf("new store not empty: %+v", got)
		}
		for _, name := range []string{"a", "b", "c"} {
			mustValue(t, s.Save(Record{ID: name, Name: name}))
		}
		var names []string
		for _, r := range mustCollect(t, s) {
			names = append(names, r.Name)
		}
		slices.Sort(names)
		if !slices.Equal(names, []string{"a", "b", "c"}) {
			t.Errorf("FindAll names = %v", names)
		}
	})

	t.Run("find missing is empty", func(t *testing.T) {
		s := newStore(t)
		_, ok, err := s.FindByID("missing").Block(ctx(t))
		if err != nil || ok {
			t.Errorf("FindByID(missing) = %v, %v", ok, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		mustValue(t, s.Save(Record{ID: "gone", Name: "x"}))
		if _, ok, err := s.DeleteByID("gone").Block(ctx(t)); err != nil || ok {
			t.Fatalf("DeleteByID = %v, %v", ok, err)
		}
		if _, ok, _ := s.FindByID("gone").Block(ctx(t)); ok {
			t.Error("record still present after delete")
		}
		if _, _, err := s.DeleteByID("never-existed").Block(ctx(t)); err != nil {
			t.Errorf("deleting a missing record failed: %v", err)
		}
	})

	t.Run("operations are cold", func(t *testing.T) {
		s := newStore(t)
		pending := s.Save(Record{ID: "cold", Name: "x"})
		if _, ok, _ := s.FindByID("cold").Block(ctx(t)); ok {
			t.Fatal("Save ran before the task was run")
		}
		mustValue(t, pending)
		if _, ok, _ := s.FindByID("cold").Block(ctx(t)); !ok {
			t.Error("Save did not run when the task ran")
		}
	})
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

func mustValue(t *testing.T, task flux.Task[Record]) Record {
	t.Helper()
	v, ok, err := task.Block(ctx(t))
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if !ok {
		t.Fatal("task completed empty")
	}
	return v
}

func mustCollect(t *testing.T, s store.AsyncStore[Record]) []Record {
	t.Helper()
	all, err := s.FindAll().Collect(ctx(t))
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	return all
}
