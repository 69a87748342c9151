package tier

import (
	"sort"

	"payscope/pkg/domain"
)

// DefaultCompanyNames returns the companies named in the canonical table,
// sorted. Seed tooling uses this as its baseline employer population.
func DefaultCompanyNames() []string {
	names := make([]string, 0, len(defaultCompanies()))
	for name := range defaultCompanies() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultCompanies() map[string]Tier {
	return map[string]Tier{
		// Top-tier multinationals.
		"Google India":    TierTopProduct,
		"Amazon India":    TierTopProduct,
		"Microsoft India": TierTopProduct,
		"Meta India":      TierTopProduct,
		"Apple India":     TierTopProduct,
		"Adobe India":     TierTopProduct,

		// Growth-stage product companies.
		"Flipkart": TierGrowthProduct,
		"Swiggy":   TierGrowthProduct,
		"Zomato":   TierGrowthProduct,
		"PhonePe":  TierGrowthProduct,
		"Razorpay": TierGrowthProduct,
		"CRED":     TierGrowthProduct,
		"Paytm":    TierGrowthProduct,
		"Ola":      TierGrowthProduct,

		// Services and outsourcing firms.
		"TCS":               TierServices,
		"Infosys":           TierServices,
		"Wipro":             TierServices,
		"HCL Technologies":  TierServices,
		"Tech Mahindra":     TierServices,
		"Capgemini":         TierServices,
		"Cognizant":         TierServices,
		"Accenture India":   TierServices,
		"LTI Mindtree":      TierServices,
	}
}

// DefaultTable is the canonical classification table for the Indian tech
// market (verified public ranges, 2024-25). Earlier data imports carried
// per-company bands that drifted apart; this table is the single source of
// truth, with named companies mapped to a tier and bands kept per-tier.
func DefaultTable() *Table {
	profiles := map[Tier]Profile{
		TierTopProduct: {
			Bands: map[domain.Level]Band{
				domain.LevelEntry:  {Min: 1_400_000, Max: 2_600_000},
				domain.LevelMid:    {Min: 2_200_000, Max: 5_200_000},
				domain.LevelSenior: {Min: 4_500_000, Max: 12_000_000},
			},
			DefaultBand: Band{Min: 2_200_000, Max: 5_200_000},
			Mix: PayMix{
				Bonus:  FractionRange{Min: 0.15, Max: 0.25},
				Equity: FractionRange{Min: 0.30, Max: 0.50},
			},
		},
		TierGrowthProduct: {
			Bands: map[domain.Level]Band{
				domain.LevelEntry:  {Min: 800_000, Max: 1_800_000},
				domain.LevelMid:    {Min: 1_350_000, Max: 3_500_000},
				domain.LevelSenior: {Min: 2_500_000, Max: 7_000_000},
			},
			DefaultBand: Band{Min: 1_350_000, Max: 3_500_000},
			Mix: PayMix{
				Bonus:  FractionRange{Min: 0.10, Max: 0.20},
				Equity: FractionRange{Min: 0.20, Max: 0.35},
			},
		},
		TierServices: {
			Bands: map[domain.Level]Band{
				domain.LevelEntry:  {Min: 300_000, Max: 600_000},
				domain.LevelMid:    {Min: 650_000, Max: 1_400_000},
				domain.LevelSenior: {Min: 1_200_000, Max: 2_700_000},
			},
			DefaultBand: Band{Min: 650_000, Max: 1_400_000},
			Mix: PayMix{
				Bonus:  FractionRange{Min: 0.05, Max: 0.12},
				Equity: FractionRange{Min: 0.00, Max: 0.05},
			},
		},
	}

	table, err := NewTable(defaultCompanies(), profiles, TierServices)
	if err != nil {
		// The canonical table is code, not input; a broken build is the
		// right failure mode.
		panic(err)
	}
	return table
}
