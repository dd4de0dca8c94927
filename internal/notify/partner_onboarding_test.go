package notify

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rental-notify/internal/email/templates"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func userRows(id, email, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "name", "reset_token_used", "created_at", "updated_at"}).
		AddRow(id, email, name, false, time.Now(), time.Now())
}

func hostRows(id, userID, hostType string, rate float64, company *string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "host_type", "approval_status", "active", "partner_company_name", "name", "email", "current_commission_rate"}).
		AddRow(id, userID, hostType, "APPROVED", true, company, "Host", "host@example.com", rate)
}

func TestResendPartnerWelcomeUserNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sender := &fakeSender{}
	svc := NewNotifyService(sender, &fakeSuppressions{}, db, templates.DefaultBranding())

	res := svc.ResendPartnerWelcome(context.Background(), "ghost@example.com")

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrUserNotFound)
	assert.Empty(t, sender.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResendPartnerWelcomeNoHostRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows("u-1", "dana@example.com", "Dana"))
	mock.ExpectQuery(`SELECT \* FROM "rental_hosts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sender := &fakeSender{}
	svc := NewNotifyService(sender, &fakeSuppressions{}, db, templates.DefaultBranding())

	res := svc.ResendPartnerWelcome(context.Background(), "dana@example.com")

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrHostNotFound)
	assert.Empty(t, sender.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResendPartnerWelcomeRejectsPeerHost(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows("u-1", "peer@example.com", "Pat"))
	mock.ExpectQuery(`SELECT \* FROM "rental_hosts"`).
		WillReturnRows(hostRows("h-1", "u-1", "PEER", 0.30, nil))

	sender := &fakeSender{}
	svc := NewNotifyService(sender, &fakeSuppressions{}, db, templates.DefaultBranding())

	res := svc.ResendPartnerWelcome(context.Background(), "peer@example.com")

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrNotFleetPartner)
	assert.Empty(t, sender.sent)
	// No UPDATE was expected: a rejected host must not get a new token.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResendPartnerWelcomeSendsFreshLink(t *testing.T) {
	db, mock := newMockDB(t)
	company := "Ooms Mobility BV"

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows("u-1", "dana@example.com", "Dana"))
	mock.ExpectQuery(`SELECT \* FROM "rental_hosts"`).
		WillReturnRows(hostRows("h-1", "u-1", "FLEET_PARTNER", 0.12, &company))

	// Token persist.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Switchboard lookup: no row means the type defaults to enabled.
	mock.ExpectQuery(`SELECT \* FROM "system_email_settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Audit row.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "email_audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("5f0c9a4e-9f9e-4c47-8f2a-b8f0f4f9f001"))
	mock.ExpectCommit()

	sender := &fakeSender{}
	svc := NewNotifyService(sender, &fakeSuppressions{}, db, templates.DefaultBranding())

	res := svc.ResendPartnerWelcome(context.Background(), "dana@example.com")

	assert.Equal(t, OutcomeSent, res.Outcome)
	require.Len(t, sender.sent, 1)

	mail := sender.sent[0]
	assert.Equal(t, "dana@example.com", mail.To)
	assert.Contains(t, mail.Subject, "Fleet Partner Account")
	assert.Contains(t, mail.HTML, "/partner/reset-password?token=")
	assert.Contains(t, mail.HTML, company)
	// 0.12 commission is Platinum tier.
	assert.Contains(t, mail.HTML, "Platinum")
	assert.NoError(t, mock.ExpectationsWereMet())
}
