package services

import (
	"testing"
	"time"

	"github.com/campushare/campushare-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		startsAt *time.Time
		endsAt   *time.Time
		want     string
	}{
		{"no window is active", nil, nil, models.AnnouncementStatusActive},
		{"future start is scheduled", &future, nil, models.AnnouncementStatusScheduled},
		{"open window is active", &past, &future, models.AnnouncementStatusActive},
		{"past end is ended", nil, &past, models.AnnouncementStatusEnded},
		{"start passed no end", &past, nil, models.AnnouncementStatusActive},
		{"boundary end is ended", &past, &now, models.AnnouncementStatusEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveStatus(tt.startsAt, tt.endsAt, now))
		})
	}
}
