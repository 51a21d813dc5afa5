package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

func TestSummarizePeriodsWeightedAverage(t *testing.T) {
	grades := []sia.Grade{
		{CourseCode: "1", Period: "2025-1", Credits: 3, Grade: 4.0},
		{CourseCode: "2", Period: "2025-1", Credits: 1, Grade: 2.0},
		{CourseCode: "3", Period: "2024-2", Credits: 4, Grade: 5.0},
	}

	periods := summarizePeriods(grades, 4.2)
	require.Len(t, periods, 2)

	assert.Equal(t, "2025-1", periods[0].Period)
	assert.InDelta(t, 3.5, periods[0].PeriodAverage, 1e-9) // (4*3 + 2*1) / 4
	assert.Equal(t, 4.2, periods[0].CumulativeAverage)
	require.Len(t, periods[0].Grades, 2)

	assert.Equal(t, "2024-2", periods[1].Period)
	assert.InDelta(t, 5.0, periods[1].PeriodAverage, 1e-9)
}

func TestSummarizePeriodsPreservesFirstSeenOrder(t *testing.T) {
	grades := []sia.Grade{
		{CourseCode: "1", Period: "2023-1", Credits: 3, Grade: 3.0},
		{CourseCode: "2", Period: "2024-1", Credits: 3, Grade: 3.0},
		{CourseCode: "3", Period: "2023-1", Credits: 3, Grade: 4.0},
	}

	periods := summarizePeriods(grades, 0)
	require.Len(t, periods, 2)
	assert.Equal(t, "2023-1", periods[0].Period)
	assert.Equal(t, "2024-1", periods[1].Period)
	assert.Len(t, periods[0].Grades, 2)
}

func TestSummarizePeriodsDefaultsMissingPeriod(t *testing.T) {
	grades := []sia.Grade{
		{CourseCode: "1", Credits: 2, Grade: 3.5},
	}

	periods := summarizePeriods(grades, 0)
	require.Len(t, periods, 1)
	assert.Equal(t, "Sin periodo", periods[0].Period)
}

func TestSummarizePeriodsZeroCredits(t *testing.T) {
	grades := []sia.Grade{
		{CourseCode: "1", Period: "2025-1", Credits: 0, Grade: 5.0},
	}

	periods := summarizePeriods(grades, 0)
	require.Len(t, periods, 1)
	assert.Zero(t, periods[0].PeriodAverage)
}
