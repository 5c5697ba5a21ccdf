package normalizer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-leave-engine/internal/models"
	"premium-leave-engine/internal/services/normalizer"
)

func TestParseSingleDate_Shapes(t *testing.T) {
	testCases := []struct {
		input    string
		expected models.Date
	}{
		{"15/01/2025", models.MustDate(2025, time.January, 15)},
		{"5/3/2024", models.MustDate(2024, time.March, 5)},
		{"15/01/25", models.MustDate(2025, time.January, 15)},
		{"15/01/75", models.MustDate(1975, time.January, 15)},
		{"15.01.2025", models.MustDate(2025, time.January, 15)},
		{"29/02/2024", models.MustDate(2024, time.February, 29)},
		{"01/2025", models.MustDate(2025, time.January, 1)},
		{"1/25", models.MustDate(2025, time.January, 1)},
		{"jan/2025", models.MustDate(2025, time.January, 1)},
		{"jan/26", models.MustDate(2026, time.January, 1)},
		{"Jan-25", models.MustDate(2025, time.January, 1)},
		{"JANEIRO/2025", models.MustDate(2025, time.January, 1)},
		{"fev/2024", models.MustDate(2024, time.February, 1)},
		{"março/2025", models.MustDate(2025, time.March, 1)},
		{"marco 2025", models.MustDate(2025, time.March, 1)},
		{"outubro de 2023", models.MustDate(2023, time.October, 1)},
		{"dez/99", models.MustDate(1999, time.December, 1)},
		{"Sep-2025", models.MustDate(2025, time.September, 1)},
		{"december/2025", models.MustDate(2025, time.December, 1)},
		{"2025-01-15", models.MustDate(2025, time.January, 15)},
		{"  15/01/2025  ", models.MustDate(2025, time.January, 15)},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := normalizer.ParseSingleDate(tc.input)
			require.True(t, ok, "expected %q to parse", tc.input)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseSingleDate_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"95",
		"31/02/2025",
		"29/02/2025",
		"32/01/2025",
		"15/13/2025",
		"00/2025",
		"13/2025",
		"15/01/025",
		"xyz/2025",
		"jo/2025",
		"outros 2025",
		"junk 25",
		"marketing/2025",
		"2025-02-30",
		"15/01/1899",
		"01/01/2101",
		"amanhã",
		"15/01",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, ok := normalizer.ParseSingleDate(input)
			assert.False(t, ok, "expected %q to be rejected", input)
		})
	}
}

func TestParseSingleDate_RoundTrip(t *testing.T) {
	start := models.MustDate(2020, time.January, 1)
	for i := 0; i < 366*3; i++ {
		d := start.AddDays(i)
		got, ok := normalizer.ParseSingleDate(d.String())
		require.True(t, ok, "round trip failed for %s", d)
		assert.Equal(t, d, got)
	}
}

func TestParsePeriod_CustomRange(t *testing.T) {
	testCases := []struct {
		input string
		start models.Date
		end   models.Date
	}{
		{"01/03/2025 - 29/05/2025", models.MustDate(2025, time.March, 1), models.MustDate(2025, time.May, 29)},
		{"01/03/2025 a 29/05/2025", models.MustDate(2025, time.March, 1), models.MustDate(2025, time.May, 29)},
		{"01/03/2025 A 29/05/2025", models.MustDate(2025, time.March, 1), models.MustDate(2025, time.May, 29)},
		{"01/03/2025 to 29/05/2025", models.MustDate(2025, time.March, 1), models.MustDate(2025, time.May, 29)},
		{"01/03/2025 até 29/05/2025", models.MustDate(2025, time.March, 1), models.MustDate(2025, time.May, 29)},
		{"1/3/25-29/5/25", models.MustDate(2025, time.March, 1), models.MustDate(2025, time.May, 29)},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			p := normalizer.ParsePeriod(tc.input)
			require.Equal(t, models.PeriodCustomRange, p.Kind)
			assert.Equal(t, tc.start, p.Start)
			assert.Equal(t, tc.end, p.End)
			assert.Equal(t, tc.input, p.Raw)
			assert.False(t, p.HasConflict())
		})
	}
}

func TestParsePeriod_ConflictingRangeIsKept(t *testing.T) {
	p := normalizer.ParsePeriod("30/05/2025 - 01/03/2025")

	require.Equal(t, models.PeriodCustomRange, p.Kind)
	assert.True(t, p.HasConflict())
}

func TestParsePeriod_StartOnly(t *testing.T) {
	testCases := []struct {
		input    string
		expected models.Date
	}{
		{"01/03/2025", models.MustDate(2025, time.March, 1)},
		{"03/2025", models.MustDate(2025, time.March, 1)},
		{"mar/2025", models.MustDate(2025, time.March, 1)},
		{"2025-03-01", models.MustDate(2025, time.March, 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			p := normalizer.ParsePeriod(tc.input)
			require.Equal(t, models.PeriodStartOnly, p.Kind)
			assert.Equal(t, tc.expected, p.Start)
			assert.True(t, p.End.IsZero())
		})
	}
}

func TestParsePeriod_MonthYearEndpointsAreNotRanges(t *testing.T) {
	p := normalizer.ParsePeriod("03/2025 - 05/2025")

	assert.Equal(t, models.PeriodInvalid, p.Kind)
	assert.Equal(t, "03/2025 - 05/2025", p.Raw)
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, input := range []string{"", "n/a", "01/03/2025 - 31/02/2025", "a definir"} {
		p := normalizer.ParsePeriod(input)
		assert.Equal(t, models.PeriodInvalid, p.Kind, input)
		assert.Equal(t, input, p.Raw)
		assert.False(t, p.IsValid())
	}
}

func TestNormalizeYear(t *testing.T) {
	assert.Equal(t, 2000, normalizer.NormalizeYear(0, 2))
	assert.Equal(t, 2049, normalizer.NormalizeYear(49, 2))
	assert.Equal(t, 1950, normalizer.NormalizeYear(50, 2))
	assert.Equal(t, 1999, normalizer.NormalizeYear(99, 2))
	assert.Equal(t, 2025, normalizer.NormalizeYear(2025, 4))
}

func TestLookupMonth(t *testing.T) {
	testCases := []struct {
		name     string
		expected time.Month
	}{
		{"jan", time.January},
		{"fevereiro", time.February},
		{"Feb", time.February},
		{"MARÇO", time.March},
		{"abr", time.April},
		{"apr", time.April},
		{"mai", time.May},
		{"may", time.May},
		{"ago", time.August},
		{"aug", time.August},
		{"set", time.September},
		{"sept", time.September},
		{"out", time.October},
		{"oct", time.October},
		{"dez", time.December},
		{"dec", time.December},
	}

	for _, tc := range testCases {
		got, ok := normalizer.LookupMonth(tc.name)
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.expected, got, tc.name)
	}

	_, ok := normalizer.LookupMonth("ju")
	assert.False(t, ok)
	_, ok = normalizer.LookupMonth("xyz")
	assert.False(t, ok)

	for _, word := range []string{"outros", "junk", "marketing", "janeiros", "decembers"} {
		_, ok := normalizer.LookupMonth(word)
		assert.False(t, ok, word)
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "março", normalizer.MonthName(time.March, normalizer.Portuguese))
	assert.Equal(t, "march", normalizer.MonthName(time.March, normalizer.English))
	assert.Equal(t, "", normalizer.MonthName(time.Month(13), normalizer.English))
}
