package market_test

import (
	"context"
	"testing"
	"time"

	"github.com/goganux/texas-career-path-explorer/pkg/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
}

func TestStatic_Robotics(t *testing.T) {
	src := market.NewStatic(market.WithClock(fixedClock))

	trends, err := src.Trends(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "robotics engineer", trends.Query)
	assert.Equal(t, "Python Programming", trends.SkillsDemand[0].Skill)
	require.Len(t, trends.SalaryTrends, 6)
	assert.Equal(t, "Jul", trends.SalaryTrends[0].Month)
	assert.Equal(t, "Dec", trends.SalaryTrends[5].Month)
	assert.Equal(t, 66500, trends.SalaryTrends[0].AverageSalary)
	assert.Equal(t, 25, trends.IndustryGrowth[0].Growth, "technology gets the robotics bonus")
	assert.Equal(t, "Robotics Position", trends.JobPostings[0].JobTitle)
	assert.Equal(t, 77000, trends.LocationData[0].AverageSalary)
	assert.Equal(t, 100, trends.LocationData[0].JobCount)
}

func TestStatic_UnknownInterest(t *testing.T) {
	src := market.NewStatic(market.WithClock(fixedClock))

	trends, err := src.Trends(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "technology", trends.Query)
	assert.Equal(t, "Communication", trends.SkillsDemand[0].Skill)
	assert.Equal(t, "Technology Position", trends.JobPostings[0].JobTitle)
}

func TestStatic_Deterministic(t *testing.T) {
	src := market.NewStatic(market.WithClock(fixedClock))

	a, err := src.Trends(context.Background(), 2)
	require.NoError(t, err)
	b, err := src.Trends(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	a.SkillsDemand[0].Skill = "mutated"
	assert.Equal(t, "Menu Development", market.SkillsDemand("chef cook")[0].Skill)
}

func TestStatic_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := market.NewStatic().Trends(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
