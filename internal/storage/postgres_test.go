package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	p := NewPostgres(db)
	ctx := context.Background()

	selectSQL := regexp.QuoteMeta(`SELECT value FROM storefront_kv WHERE key = $1`)

	// hit
	mock.ExpectQuery(selectSQL).
		WithArgs("cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":1}]`)))

	v, ok, err := p.Get(ctx, "cart")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(v) != `[{"id":1}]` {
		t.Fatalf("unexpected result: ok=%v value=%s", ok, v)
	}

	// miss -> not found, no error
	mock.ExpectQuery(selectSQL).
		WithArgs("lastOrder").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err = p.Get(ctx, "lastOrder")
	if err != nil {
		t.Fatalf("Get miss: %v", err)
	}
	if ok {
		t.Fatal("expected not found")
	}

	// database error is propagated
	mock.ExpectQuery(selectSQL).
		WithArgs("cart").
		WillReturnError(errors.New("connection reset"))

	if _, _, err := p.Get(ctx, "cart"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresPutUpserts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	p := NewPostgres(db)
	ctx := context.Background()

	upsertSQL := regexp.QuoteMeta(`INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`)

	mock.ExpectExec(upsertSQL).
		WithArgs("cart", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := p.Put(ctx, "cart", []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mock.ExpectExec(upsertSQL).
		WithArgs("cart", []byte(`[1]`)).
		WillReturnError(errors.New("disk full"))

	if err := p.Put(ctx, "cart", []byte(`[1]`)); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	p := NewPostgres(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM storefront_kv WHERE key = $1`)).
		WithArgs("cart").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := p.Delete(ctx, "cart"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
