package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rental-notify/internal/suppression"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestSyncSinceAppliesUnsubscribes(t *testing.T) {
	db, mock := newTestDB(t)

	var gotToken, gotSince string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Service-Token")
		gotSince = r.URL.Query().Get("since")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"unsubscribes":[
			{"email":"A@B.com","reason":"support ticket","created_at":"2026-08-30T10:00:00Z"},
			{"email":"c@d.com","created_at":"2026-08-30T11:00:00Z"}
		]}`))
	}))
	t.Cleanup(server.Close)

	// One upsert per event.
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "email_suppressions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	// Cursor write: no existing row, so a fresh insert.
	mock.ExpectQuery(`SELECT \* FROM "sync_configs"`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sync_configs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := suppression.NewStore(db, nil)
	svc := NewSuppressionSyncService(db, store, server.URL, "svc-token")

	since := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	err := svc.SyncSince(context.Background(), since)
	require.NoError(t, err)

	assert.Equal(t, "svc-token", gotToken)
	assert.Equal(t, "2026-08-30T09:00:00Z", gotSince)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncSinceFullSyncUsesEpoch(t *testing.T) {
	db, mock := newTestDB(t)

	var gotSince string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSince = r.URL.Query().Get("since")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"unsubscribes":[]}`))
	}))
	t.Cleanup(server.Close)

	mock.ExpectQuery(`SELECT \* FROM "sync_configs"`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sync_configs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := suppression.NewStore(db, nil)
	svc := NewSuppressionSyncService(db, store, server.URL, "svc-token")

	err := svc.SyncSince(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01T00:00:00Z", gotSince)
}

func TestSyncSincePropagatesServerError(t *testing.T) {
	db, _ := newTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	store := suppression.NewStore(db, nil)
	svc := NewSuppressionSyncService(db, store, server.URL, "svc-token")

	err := svc.SyncSince(context.Background(), time.Now())
	assert.Error(t, err)
}
