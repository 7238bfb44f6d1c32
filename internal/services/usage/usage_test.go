package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/fitpulse/fitpulse/internal/models"
)

func TestPresenter_Present(t *testing.T) {
	tests := []struct {
		name         string
		limit        int
		currentUsage int
		wantState    string
	}{
		{"unlimited ignores usage", models.UnlimitedUsage, 1000, StateUnlimited},
		{"unlimited with zero usage", models.UnlimitedUsage, 0, StateUnlimited},
		{"normal usage", 50, 10, StateNormal},
		{"warning at ninety percent", 50, 45, StateWarning},
		{"warning exactly at threshold", 10, 8, StateWarning},
		{"just below threshold", 10, 7, StateNormal},
		{"blocked at limit", 50, 50, StateBlocked},
		{"blocked above limit", 50, 60, StateBlocked},
		{"zero limit zero usage", 0, 0, StateNormal},
		{"zero limit with usage", 0, 1, StateBlocked},
	}

	p := NewPresenter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Present(tt.limit, tt.currentUsage)
			assert.Equal(t, tt.wantState, got.State)
		})
	}
}

func TestPresenter_PercentCapped(t *testing.T) {
	p := NewPresenter()

	got := p.Present(10, 25)
	assert.Equal(t, StateBlocked, got.State)
	assert.Equal(t, 1.0, got.PercentUsed)
}

func TestPresenter_Remaining(t *testing.T) {
	p := NewPresenter()

	got := p.Present(50, 45)
	assert.Equal(t, 5, got.Remaining)

	got = p.Present(models.UnlimitedUsage, 45)
	assert.Equal(t, models.UnlimitedUsage, got.Remaining)
}

func TestPresenter_CustomThreshold(t *testing.T) {
	p := NewPresenterWithThreshold(0.5)

	assert.Equal(t, StateWarning, p.Present(10, 5).State)
	assert.Equal(t, StateNormal, p.Present(10, 4).State)
}

func TestPresenter_UnlimitedProperty(t *testing.T) {
	p := NewPresenter()

	rapid.Check(t, func(t *rapid.T) {
		currentUsage := rapid.IntRange(0, 1_000_000).Draw(t, "current_usage")
		got := p.Present(models.UnlimitedUsage, currentUsage)
		if got.State != StateUnlimited {
			t.Fatalf("limit -1 with usage %d yielded %q", currentUsage, got.State)
		}
	})
}

func TestPresenter_BlockedAtLimitProperty(t *testing.T) {
	p := NewPresenter()

	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 10_000).Draw(t, "limit")
		over := rapid.IntRange(0, 100).Draw(t, "over")
		got := p.Present(limit, limit+over)
		if got.State != StateBlocked {
			t.Fatalf("usage %d at limit %d yielded %q", limit+over, limit, got.State)
		}
	})
}

func TestPresenter_WarningCrossingProperty(t *testing.T) {
	// Предупреждение появляется ровно на пороге и не раньше.
	p := NewPresenter()

	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 10_000).Draw(t, "limit")
		usage := rapid.IntRange(0, limit-1).Draw(t, "usage")

		got := p.Present(limit, usage)
		ratio := float64(usage) / float64(limit)
		if ratio >= DefaultWarningThreshold && got.State != StateWarning {
			t.Fatalf("usage %d/%d (%.2f) expected warning, got %q", usage, limit, ratio, got.State)
		}
		if ratio < DefaultWarningThreshold && got.State != StateNormal {
			t.Fatalf("usage %d/%d (%.2f) expected normal, got %q", usage, limit, ratio, got.State)
		}
	})
}
