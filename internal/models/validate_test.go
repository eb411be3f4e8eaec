package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSnapshotValidate(t *testing.T) {
	valid := MatchSnapshot{ElapsedMinutes: 55, AccountBalance: 100}
	valid.Home.Possession = 55
	valid.Away.Possession = 45
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(s *MatchSnapshot)
		field  string
	}{
		{"negative minutes", func(s *MatchSnapshot) { s.ElapsedMinutes = -1 }, "ElapsedMinutes"},
		{"negative goals", func(s *MatchSnapshot) { s.Away.Goals = -2 }, "Away.Goals"},
		{"goals beyond int32", func(s *MatchSnapshot) { s.Home.Goals = math.MaxInt32 + 1 }, "Home.Goals"},
		{"nan xg", func(s *MatchSnapshot) { s.Home.XG = math.NaN() }, "Home.XG"},
		{"infinite balance", func(s *MatchSnapshot) { s.AccountBalance = math.Inf(1) }, "AccountBalance"},
		{"possession above 100", func(s *MatchSnapshot) { s.Home.Possession = 120 }, "Home.Possession"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			assert.ErrorIs(t, err, ErrInvalidNumber)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestPreMatchSnapshotValidate(t *testing.T) {
	assert.NoError(t, PreMatchSnapshot{Line: 2.5, Home: PreMatchTeam{Form: -3}}.Validate())

	err := PreMatchSnapshot{Home: PreMatchTeam{Injuries: -1}}.Validate()
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestMarketQuoteValidate(t *testing.T) {
	assert.NoError(t, MarketQuote{Market: MarketHome, Price: 0}.Validate())
	assert.NoError(t, MarketQuote{Market: MarketHome, Price: -1}.Validate())
	assert.ErrorIs(t, MarketQuote{Market: MarketHome, Price: math.NaN()}.Validate(), ErrInvalidNumber)
}

func TestSnapshotHelpers(t *testing.T) {
	s := MatchSnapshot{}
	s.Home.Goals = 3
	s.Away.Goals = 1

	assert.Equal(t, 2, s.GoalDifference())
	assert.Equal(t, 4, s.TotalGoals())
	assert.Equal(t, DefaultGoalLine, PreMatchSnapshot{}.GoalLine())
	assert.Equal(t, 3.5, PreMatchSnapshot{Line: 3.5}.GoalLine())
}
