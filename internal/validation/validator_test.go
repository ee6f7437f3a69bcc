package validation

import (
	"testing"
	"time"

	"guardian-beam/internal/domain"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	TargetID  string    `json:"target_id" validate:"required,max=8"`
	Type      int       `json:"type" validate:"min=1"`
	Limit     int       `json:"limit" validate:"min=1,max=100"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date" validate:"gtfield=StartDate"`
}

func TestStruct(t *testing.T) {
	now := time.Now()
	valid := sample{TargetID: "p1", Type: 1, Limit: 10, StartDate: now, EndDate: now.Add(time.Hour)}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct("test", valid))
	})

	tests := []struct {
		name   string
		mutate func(*sample)
		want   string
	}{
		{"missing target", func(s *sample) { s.TargetID = "" }, "target_id is required"},
		{"long target", func(s *sample) { s.TargetID = "123456789" }, "target_id must be at most 8"},
		{"zero type", func(s *sample) { s.Type = 0 }, "type must be at least 1"},
		{"limit too big", func(s *sample) { s.Limit = 101 }, "limit must be at most 100"},
		{"inverted range", func(s *sample) { s.EndDate = s.StartDate.Add(-time.Second) }, "end_date must be after StartDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			err := Struct("test", s)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	t.Run("every failing field is reported", func(t *testing.T) {
		err := Struct("test", sample{})
		assert.ErrorContains(t, err, "target_id is required")
		assert.ErrorContains(t, err, "type must be at least 1")
	})
}
