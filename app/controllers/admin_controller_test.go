package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jomedical/clinicverify/app/models"
)

func TestFillMissingDays(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	sparse := []models.DailyStats{
		{Date: "2024-03-02", Count: 4},
		{Date: "2024-03-05", Count: 1},
	}

	filled := fillMissingDays(sparse, start, end)
	require.Len(t, filled, 5)

	assert.Equal(t, "2024-03-01", filled[0].Date)
	assert.Equal(t, 0, filled[0].Count)
	assert.Equal(t, "2024-03-02", filled[1].Date)
	assert.Equal(t, 4, filled[1].Count)
	assert.Equal(t, "2024-03-05", filled[4].Date)
	assert.Equal(t, 1, filled[4].Count)
}

func TestSummarizeUserAgents(t *testing.T) {
	agents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (Version/17.0 Mobile/15E148 Safari/604.1",
		"Googlebot/2.1 (+http://www.google.com/bot.html)",
		"",
	}

	summary := summarizeUserAgents(agents)
	require.NotEmpty(t, summary)

	// Chrome appears twice and must rank first
	assert.Equal(t, "Chrome", summary[0].Name)
	assert.Equal(t, int64(2), summary[0].Count)

	var total int64
	for _, entry := range summary {
		total += entry.Count
	}
	assert.Equal(t, int64(4), total, "empty agents are skipped")
}

func TestParseFormDate(t *testing.T) {
	got, err := parseFormDate("2024-06-30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseFormDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseFormDate("30/06/2024")
	assert.Error(t, err)
}
