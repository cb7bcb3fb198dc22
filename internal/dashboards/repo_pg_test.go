package dashboards

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoInsertBindsAllColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	dashboard := Dashboard{
		ID:        "dash-1",
		UserID:    "google:alice",
		Title:     "Raid night",
		Data:      json.RawMessage(`{"overallScore":72}`),
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO dashboards").
		WithArgs(
			dashboard.ID,
			dashboard.UserID,
			dashboard.Title,
			[]byte(dashboard.Data),
			dashboard.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Insert(context.Background(), dashboard); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDFiltersOnOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "data", "created_at"}).
		AddRow("dash-1", "google:alice", "Raid night", []byte(`{"overallScore":72}`), created)

	mock.ExpectQuery("SELECT id, user_id, title, data, created_at").
		WithArgs("dash-1", "google:alice").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "dash-1", "google:alice")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "dash-1" || got.Title != "Raid night" {
		t.Fatalf("unexpected dashboard %+v", got)
	}
	if string(got.Data) != `{"overallScore":72}` {
		t.Fatalf("unexpected data %s", got.Data)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMapsNoRowsToNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, user_id, title, data, created_at").
		WithArgs("dash-1", "google:mallory").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "data", "created_at"}))

	_, err = repo.GetByID(context.Background(), "dash-1", "google:mallory")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUserOmitsData(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	newer := time.Now().UTC()
	older := newer.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "created_at"}).
		AddRow("dash-2", "google:alice", "Second", newer).
		AddRow("dash-1", "google:alice", "First", older)

	mock.ExpectQuery("SELECT id, user_id, title, created_at").
		WithArgs("google:alice").
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "google:alice")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}
	if list[0].ID != "dash-2" || list[1].ID != "dash-1" {
		t.Fatalf("unexpected order %+v", list)
	}
	if list[0].Data != nil {
		t.Fatalf("listing must not carry the data blob")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
