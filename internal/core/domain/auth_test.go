package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/spendwise_client/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTwoFactorStatus_EnabledFactors(t *testing.T) {
	tests := []struct {
		name   string
		status domain.TwoFactorStatus
		want   []domain.FactorType
	}{
		{name: "nothing enrolled", status: domain.TwoFactorStatus{BackupCodesRemaining: 10}, want: nil},
		{name: "sms only", status: domain.TwoFactorStatus{SMSEnabled: true}, want: []domain.FactorType{domain.FactorSMS}},
		{
			name:   "email and sms with backup codes",
			status: domain.TwoFactorStatus{EmailEnabled: true, SMSEnabled: true, BackupCodesRemaining: 3},
			want:   []domain.FactorType{domain.FactorEmail, domain.FactorSMS, domain.FactorBackupCode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.EnabledFactors())
		})
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, domain.Session{}.Expired(now), "zero expiry never expires")
	assert.False(t, domain.Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, domain.Session{ExpiresAt: now}.Expired(now))
}

func TestConnectionState_OffersReauthOnlyForError(t *testing.T) {
	ref := domain.ConnectionRef{ConnectionID: "item_1", Mask: "1234"}

	assert.False(t, domain.OffersReauth(domain.Manual{}))
	assert.False(t, domain.OffersReauth(domain.Connected{ConnectionRef: ref}))
	assert.True(t, domain.OffersReauth(domain.NeedsReauth{ConnectionRef: ref}))
	assert.False(t, domain.OffersReauth(domain.PendingDisconnect{ConnectionRef: ref}))

	_, ok := domain.RefOf(domain.Manual{})
	assert.False(t, ok)
	got, ok := domain.RefOf(domain.PendingDisconnect{ConnectionRef: ref})
	assert.True(t, ok)
	assert.Equal(t, ref, got)
}
