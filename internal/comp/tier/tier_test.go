package tier

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
)

func TestClassifyKnownCompanies(t *testing.T) {
	table := DefaultTable()

	t.Run("top-tier multinational", func(t *testing.T) {
		band, mix, err := table.Classify("Google India", domain.LevelSenior)
		require.NoError(t, err)
		assert.Equal(t, Band{Min: 4_500_000, Max: 12_000_000}, band)
		assert.Equal(t, FractionRange{Min: 0.30, Max: 0.50}, mix.Equity)
	})

	t.Run("services firm", func(t *testing.T) {
		band, mix, err := table.Classify("TCS", domain.LevelEntry)
		require.NoError(t, err)
		assert.Equal(t, Band{Min: 300_000, Max: 600_000}, band)
		assert.LessOrEqual(t, mix.Equity.Max, 0.05)
	})

	t.Run("company names match case-insensitively", func(t *testing.T) {
		upper, _, err := table.Classify("FLIPKART", domain.LevelMid)
		require.NoError(t, err)
		lower, _, err := table.Classify("flipkart", domain.LevelMid)
		require.NoError(t, err)
		assert.Equal(t, upper, lower)
		assert.Equal(t, TierGrowthProduct, table.TierOf("Flipkart"))
	})
}

func TestClassifyUnknownCompanyFallsBackToServices(t *testing.T) {
	table := DefaultTable()

	band, mix, err := table.Classify("Acme", domain.LevelEntry)
	require.NoError(t, err)
	assert.Equal(t, TierServices, table.TierOf("Acme"))
	assert.Equal(t, Band{Min: 300_000, Max: 600_000}, band)
	assert.Equal(t, FractionRange{Min: 0.05, Max: 0.12}, mix.Bonus)
}

func TestClassifyIsDeterministic(t *testing.T) {
	table := DefaultTable()

	first, firstMix, err := table.Classify("Infosys", domain.LevelMid)
	require.NoError(t, err)
	second, secondMix, err := table.Classify("Infosys", domain.LevelMid)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstMix, secondMix)
}

func TestClassifyRejectsUnknownLevel(t *testing.T) {
	table := DefaultTable()

	_, _, err := table.Classify("TCS", domain.Level("Architect"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestMissingLevelUsesTierDefaultBand(t *testing.T) {
	// A tier whose band map only covers Entry: other levels must fall back
	// to the tier's default band, never to zero.
	table, err := NewTable(
		map[string]Tier{"Initech": TierServices},
		map[Tier]Profile{
			TierServices: {
				Bands:       map[domain.Level]Band{domain.LevelEntry: {Min: 100, Max: 200}},
				DefaultBand: Band{Min: 500, Max: 900},
				Mix: PayMix{
					Bonus:  FractionRange{Min: 0.1, Max: 0.2},
					Equity: FractionRange{Min: 0, Max: 0.1},
				},
			},
		},
		TierServices,
	)
	require.NoError(t, err)

	band, _, err := table.Classify("Initech", domain.LevelSenior)
	require.NoError(t, err)
	assert.Equal(t, Band{Min: 500, Max: 900}, band)
}

func TestDefaultCompanyNames(t *testing.T) {
	names := DefaultCompanyNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "TCS")
	assert.Contains(t, names, "Google India")
}

func TestNewTableValidation(t *testing.T) {
	profiles := map[Tier]Profile{TierServices: {DefaultBand: Band{Min: 1, Max: 2}}}

	t.Run("rejects unknown fallback tier", func(t *testing.T) {
		_, err := NewTable(nil, profiles, Tier("platinum"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects company mapped to tier without profile", func(t *testing.T) {
		_, err := NewTable(map[string]Tier{"Acme": TierTopProduct}, profiles, TierServices)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
