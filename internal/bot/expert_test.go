package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpertHardTwelveHitsUntilSixteen(t *testing.T) {
	e := NewExpert()

	target, ok := e.Target(false, 12)
	assert.True(t, ok)
	assert.Equal(t, 16, target)

	assert.True(t, e.DecideHit(view(t, "Tc2d")))
	assert.True(t, e.DecideHit(view(t, "Tc5d")))
	assert.False(t, e.DecideHit(view(t, "Tc6d")))
}

func TestExpertHit(t *testing.T) {
	e := NewExpert()
	tests := []struct {
		name  string
		cards string
		hit   bool
	}{
		{"hard 8", "5c3d", true},
		{"hard 11", "6c5d", true},
		{"hard 17", "Tc7d", false},
		{"soft 17", "As6d", true},
		{"soft 18", "As7d", false},
		{"soft 13", "As2d", true},
		{"hard 5 falls back", "3c2d", true},
		{"hard 19 falls back", "Tc9d", false},
		{"soft 20 falls back", "As9d", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hit, e.DecideHit(view(t, tt.cards)))
		})
	}
}

func TestExpertDouble(t *testing.T) {
	e := NewExpert()

	v := view(t, "6c5d") // hard 11
	v.OpponentUpCard = 10
	assert.True(t, e.DecideDouble(v))
	v.OpponentUpCard = 11
	assert.False(t, e.DecideDouble(v))

	v = view(t, "5c4d") // hard 9
	v.OpponentUpCard = 2
	assert.False(t, e.DecideDouble(v))
	v.OpponentUpCard = 4
	assert.True(t, e.DecideDouble(v))

	v = view(t, "As6d") // soft 17
	v.OpponentUpCard = 0
	assert.True(t, e.DecideDouble(v), "unknown up card uses the row alone")

	assert.False(t, e.DecideDouble(view(t, "Tc6d")), "hard 16 never doubles")
}

func TestExpertSplit(t *testing.T) {
	e := NewExpert()
	for _, cards := range []string{"AcAd", "8c8d", "9c9d", "TcTd", "KcKd"} {
		assert.True(t, e.DecideSplit(view(t, cards)), cards)
	}
	for _, cards := range []string{"7c7d", "5c5d", "KcQd"} {
		assert.False(t, e.DecideSplit(view(t, cards)), cards)
	}
}
