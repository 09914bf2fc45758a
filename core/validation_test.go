package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *Item
		wantErr error
	}{
		{"nil item", nil, ErrInvalidItem},
		{"empty name", &Item{Rating: 4.2}, ErrEmptyName},
		{"rating too high", &Item{Name: "BudgetBuddy", Rating: 5.5}, ErrInvalidRating},
		{"negative rating", &Item{Name: "BudgetBuddy", Rating: -1}, ErrInvalidRating},
		{"valid item", &Item{Name: "BudgetBuddy", Rating: 4.6}, nil},
		{"valid without vector", &Item{Name: "PlantPal", Rating: 3.9}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItem(tt.item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	t.Run("nil profile", func(t *testing.T) {
		assert.ErrorIs(t, ValidateProfile(nil), ErrInvalidProfile)
	})

	t.Run("empty session key", func(t *testing.T) {
		assert.ErrorIs(t, ValidateProfile(&UserProfile{Id: 1}), ErrInvalidProfile)
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateProfile(&UserProfile{Id: 1, SessionKey: "sess-1"}))
	})
}

func TestValidateBanditArm(t *testing.T) {
	t.Run("below prior", func(t *testing.T) {
		assert.ErrorIs(t, ValidateBanditArm(&BanditArm{Alpha: 0.5, Beta: 1}), ErrInvalidBanditArm)
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateBanditArm(NewBanditArm(1)))
	})
}

func TestValidateEvent(t *testing.T) {
	shown := []ShownItem{
		{ItemId: 1, Rank: 1, Method: MethodSemantic, Score: 0.9},
		{ItemId: 2, Rank: 2, Method: MethodKeyword, Score: 0.7},
	}

	t.Run("valid event", func(t *testing.T) {
		err := ValidateEvent(&InteractionEvent{
			EventId: "evt-1",
			Shown:   shown,
			Clicked: []ID{1},
			Liked:   []ID{1},
		})
		assert.NoError(t, err)
	})

	t.Run("missing event id", func(t *testing.T) {
		assert.ErrorIs(t, ValidateEvent(&InteractionEvent{Shown: shown}), ErrInvalidEvent)
	})

	t.Run("interaction with unshown item", func(t *testing.T) {
		err := ValidateEvent(&InteractionEvent{
			EventId: "evt-2",
			Shown:   shown,
			Clicked: []ID{42},
		})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("rating out of range", func(t *testing.T) {
		err := ValidateEvent(&InteractionEvent{EventId: "evt-3", Rating: 6})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})
}

func TestValidateLimit(t *testing.T) {
	assert.NoError(t, ValidateLimit(1))
	assert.NoError(t, ValidateLimit(10))
	assert.NoError(t, ValidateLimit(100))
	assert.ErrorIs(t, ValidateLimit(0), ErrInvalidLimit)
	assert.ErrorIs(t, ValidateLimit(101), ErrInvalidLimit)
}
