package properties

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+properties\s*\(name,\s*location,\s*price,\s*rooms,\s*type,\s*description,\s*image_key\).*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(5))
	mock.ExpectQuery(q).
		WithArgs("Sea View Flat", "Valencia", decimal.NewFromInt(250000), 3, "apartment", "bright corner unit", "properties/2024/1/2/abc.jpg").
		WillReturnRows(rows)

	id, err := repo.Create(context.Background(), &models.Property{
		Name:        "Sea View Flat",
		Location:    "Valencia",
		Price:       decimal.NewFromInt(250000),
		Rooms:       3,
		Type:        "apartment",
		Description: "bright corner unit",
		ImageKey:    "properties/2024/1/2/abc.jpg",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id != 5 {
		t.Fatalf("unexpected id: %d", id)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+properties`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Property{Name: "x", Location: "y", Type: "z", Price: decimal.NewFromInt(1)})
	if !common.IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "location", "price", "rooms", "type", "description", "image_key"}).
		AddRow(int64(7), "Old Mill", "Porto", "100000.00", 3, "house", "", "")
	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*location,\s*price,\s*rooms,\s*type,.*FROM\s+properties\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if p.Name != "Old Mill" || !p.Price.Equal(decimal.RequireFromString("100000.00")) {
		t.Fatalf("unexpected property: %+v", p)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+properties\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(9999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestUpdate_WritesAllColumns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+properties\s+SET\s+name\s*=\s*\$1,\s*location\s*=\s*\$2,\s*price\s*=\s*\$3,\s*rooms\s*=\s*\$4,\s*type\s*=\s*\$5,\s*description\s*=\s*NULLIF\(\$6,\s*''\),\s*image_key\s*=\s*NULLIF\(\$7,\s*''\)\s+WHERE\s+id\s*=\s*\$8\s*$`

	mock.ExpectExec(q).
		WithArgs("Sea View Flat", "Valencia", decimal.NewFromInt(260000), 3, "apartment", "repainted", "properties/2024/1/1/new.png", int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Property{
		ID:          12,
		Name:        "Sea View Flat",
		Location:    "Valencia",
		Price:       decimal.NewFromInt(260000),
		Rooms:       3,
		Type:        "apartment",
		Description: "repainted",
		ImageKey:    "properties/2024/1/1/new.png",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+properties`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Property{ID: 12, Name: "n", Location: "l", Type: "t", Price: decimal.NewFromInt(1)})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+properties\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), 4)
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !ok {
		t.Fatalf("expected property to exist")
	}
}

func TestList_ScansOptionalColumns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "location", "price", "rooms", "type", "description", "image_key"}).
		AddRow(int64(1), "A", "L1", "10.00", 0, "land", "", "").
		AddRow(int64(2), "B", "L2", "20.50", 2, "flat", "desc", "properties/k.png")
	mock.ExpectQuery(`FROM\s+properties`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].ImageKey != "properties/k.png" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
