package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack-tournament/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, 26)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	clock := quartz.NewMock(t)
	g := NewGenerator(randutil.New(1), WithClock(clock))

	var ids []string
	for range 10 {
		ids = append(ids, g.Generate())
		clock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	a := NewGenerator(randutil.New(42), WithClock(clock))
	b := NewGenerator(randutil.New(42), WithClock(clock))

	for range 5 {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", false},
		{"too short", "01h2xcejqtf2nbrexx3vqjhp4", true},
		{"too long", "01h2xcejqtf2nbrexx3vqjhp411", true},
		{"first char too big", "81h2xcejqtf2nbrexx3vqjhp41", true},
		{"invalid char", "01h2xcejqtf2nbrexx3vqjhpi1", true},
		{"uppercase", "01H2XCEJQTF2NBREXX3VQJHP41", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
