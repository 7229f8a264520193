package trends

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmarchuk/estatedesk/internal/common"
)

func TestCompute_IncludesZeroCountRows(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"property_name", "location", "times_sold", "times_rented"}).
		AddRow("Sea View Flat", "Valencia", int64(2), int64(1)).
		AddRow("Empty Lot", "Girona", int64(0), int64(0))
	mock.ExpectQuery(`(?s)FROM\s+properties\s+p\s+LEFT\s+JOIN\s+transactions\s+t.*GROUP\s+BY\s+p\.id`).
		WillReturnRows(rows)

	got, err := repo.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both properties, got %d", len(got))
	}
	if got[1].TimesSold != 0 || got[1].TimesRented != 0 {
		t.Fatalf("zero-history property must report zero counts: %+v", got[1])
	}
}

func TestCompute_DBError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`FROM\s+properties`).WillReturnError(errors.New("db down"))

	_, err = repo.Compute(context.Background())
	if !common.IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
