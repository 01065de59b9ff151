package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

func TestNewChatMessage(t *testing.T) {
	m, err := domain.NewChatMessage("user-1", domain.ChatRoleUser, "  how was my week?  ")
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "how was my week?", m.Content)

	_, err = domain.NewChatMessage("", domain.ChatRoleUser, "hi")
	assert.ErrorIs(t, err, domain.ErrProfileInvalidID)

	_, err = domain.NewChatMessage("user-1", "system", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidChatRole)

	_, err = domain.NewChatMessage("user-1", domain.ChatRoleUser, " \n ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	long := strings.Repeat("a", domain.MaxMessageLen+1)
	_, err = domain.NewChatMessage("user-1", domain.ChatRoleUser, long)
	assert.ErrorIs(t, err, domain.ErrMessageTooLong)

	_, err = domain.NewChatMessage("user-1", domain.ChatRoleAssistant, long)
	assert.NoError(t, err, "coach replies are not capped")
}

func TestNewDailyMetrics(t *testing.T) {
	day := time.Date(2025, 5, 10, 22, 15, 0, 0, time.UTC)
	score := func(v int) *int { return &v }
	hrv := 55.0

	m, err := domain.NewDailyMetrics("user-1", day, &hrv, score(80), score(65), score(48), "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMetricsSource, m.Source)
	assert.Equal(t, "2025-05-10", domain.FormatDate(m.Date))
	assert.Equal(t, 0, m.Date.Hour())

	tests := []struct {
		name    string
		hrv     *float64
		sleep   *int
		rest    *int
		date    time.Time
		wantErr error
	}{
		{name: "zero date", date: time.Time{}, wantErr: domain.ErrInvalidArgument},
		{name: "sleep over 100", date: day, sleep: score(101), wantErr: domain.ErrInvalidScore},
		{name: "negative hrv", date: day, hrv: func() *float64 { v := -1.0; return &v }(), wantErr: domain.ErrInvalidHRV},
		{name: "resting hr too low", date: day, rest: score(10), wantErr: domain.ErrInvalidRestingHR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewDailyMetrics("user-1", tt.date, tt.hrv, tt.sleep, nil, tt.rest, "whoop")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewOnboardingDraft(t *testing.T) {
	d, err := domain.NewOnboardingDraft("user-1", 0, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(d.Data))

	_, err = domain.NewOnboardingDraft("user-1", -1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = domain.NewOnboardingDraft("user-1", 1, json.RawMessage(`{"goal":`))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	big := json.RawMessage(`"` + strings.Repeat("x", domain.MaxDraftBytes) + `"`)
	_, err = domain.NewOnboardingDraft("user-1", 1, big)
	assert.ErrorIs(t, err, domain.ErrDraftTooLarge)
}
