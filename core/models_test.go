package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("BudgetBuddy")
		id2 := IDFromContent("BudgetBuddy")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content different id", func(t *testing.T) {
		id1 := IDFromContent("BudgetBuddy")
		id2 := IDFromContent("PlantPal")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestBanditArm(t *testing.T) {
	t.Run("new arm has uninformative prior", func(t *testing.T) {
		arm := NewBanditArm(ID(7))
		assert.Equal(t, float64(1), arm.Alpha)
		assert.Equal(t, float64(1), arm.Beta)
		assert.Equal(t, 0.5, arm.EstimatedCTR())
	})

	t.Run("estimated ctr follows posterior mean", func(t *testing.T) {
		arm := &BanditArm{ItemId: 1, Alpha: 3, Beta: 1}
		assert.InDelta(t, 0.75, arm.EstimatedCTR(), 1e-9)
	})
}

func TestUserProfileHasHistory(t *testing.T) {
	tests := []struct {
		name    string
		profile *UserProfile
		want    bool
	}{
		{"nil profile", nil, false},
		{"empty profile", &UserProfile{}, false},
		{"liked items", &UserProfile{Liked: []ID{1}}, true},
		{"lifestyle tags only", &UserProfile{LifestyleTags: []string{"fitness"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.HasHistory())
		})
	}
}

func TestIDSetHelpers(t *testing.T) {
	ids := []ID{1, 2, 3}

	assert.True(t, ContainsID(ids, 2))
	assert.False(t, ContainsID(ids, 9))

	ids = AppendUniqueID(ids, 2)
	assert.Len(t, ids, 3)

	ids = AppendUniqueID(ids, 9)
	assert.Len(t, ids, 4)
	assert.True(t, ContainsID(ids, 9))
}
