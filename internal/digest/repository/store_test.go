package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"golang-stock-digest/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestProfileRepository_FindScheduled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "tickers", "schedule_frequency", "schedule_time", "schedule_days", "timezone", "emails_paused"}).
		AddRow("u1", "a@example.com", "{AAPL,MSFT}", "daily", "08:00", "{monday,tuesday,wednesday,thursday,friday}", "UTC", false)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE schedule_days @> ARRAY\[\$1\]::text\[\] AND \(schedule_time >= \$2 AND schedule_time < \$3\) AND cardinality\(tickers\) > 0 AND emails_paused = \$4`).
		WithArgs("monday", "08:00", "09:00", false).
		WillReturnRows(rows)

	profiles, err := repo.FindScheduled(context.Background(), "monday", "08:00", "09:00")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "u1", profiles[0].ID)
	assert.Equal(t, []string{"AAPL", "MSFT"}, []string(profiles[0].Tickers))
	assert.Len(t, profiles[0].ScheduleDays, 5)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profile, err := repo.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "profiles"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("id") DO UPDATE SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &entity.UserProfile{
		ID:                "u1",
		Email:             "a@example.com",
		Tickers:           []string{"AAPL"},
		ScheduleFrequency: entity.FrequencyWeekly,
		ScheduleTime:      "09:30",
		ScheduleDays:      []string{"monday"},
		Timezone:          "UTC",
		EmailsPaused:      true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDigestRepository_LastSentAt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDigestRepository(db)

	sentAt := time.Date(2026, 3, 2, 8, 0, 5, 0, time.UTC)
	mock.ExpectQuery(`SELECT .?sent_at.? FROM "digests" WHERE user_id = \$1 ORDER BY sent_at desc`).
		WithArgs("u1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"sent_at"}).AddRow(sentAt))

	got, err := repo.LastSentAt(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, sentAt.Equal(*got))

	mock.ExpectQuery(`SELECT .?sent_at.? FROM "digests"`).
		WillReturnRows(sqlmock.NewRows([]string{"sent_at"}))

	got, err = repo.LastSentAt(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDigestRepository_FindRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDigestRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "digests" WHERE user_id = \$1 ORDER BY sent_at desc LIMIT \$2`).
		WithArgs("u1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tickers", "content", "sent_at"}).
			AddRow("d1", "u1", "{AAPL}", "AAPL: fine", time.Now()))

	digests, err := repo.FindRecent(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.Len(t, digests, 1)
	assert.Equal(t, "d1", digests[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDigestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDigestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "digests"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &entity.Digest{
		ID:      "d1",
		UserID:  "u1",
		Tickers: []string{"AAPL"},
		Content: "AAPL: fine",
		SentAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
