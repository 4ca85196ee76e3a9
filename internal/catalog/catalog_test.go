package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// expectedCellCount is the number of (definition, granularity) pairs in the
// fixed catalog: 1 + 3 + 3 + 3 + 3 + 2 + 3 + 3.
const expectedCellCount = 21

func TestCellCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, expectedCellCount, CellCount())
}

func TestReportID_IsPrefixComposed(t *testing.T) {
	t.Parallel()

	def := ReportDefinition{Prefix: "r4"}
	require.Equal(t, "r4-abc123", def.ReportID("abc123"))
}

func TestFilename_SubstitutesLowercaseGranularity(t *testing.T) {
	t.Parallel()

	def := ReportDefinition{FilenameTemplate: "downloads_detailed_{granularity}.csv"}

	tests := []struct {
		granularity Granularity
		want        string
	}{
		{Daily, "downloads_detailed_daily.csv"},
		{Weekly, "downloads_detailed_weekly.csv"},
		{Monthly, "downloads_detailed_monthly.csv"},
	}

	for _, tt := range tests {
		tt := tt
		require.Equal(t, tt.want, def.Filename(tt.granularity))
	}
}

func TestClassifyFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     Family
		matched  bool
	}{
		{"downloads file", "downloads_standard_daily.csv", FamilyDownloads, true},
		{"purchases file", "purchases_standard_weekly.csv", FamilyPurchases, true},
		{"install delete file", "install_delete_standard_monthly.csv", FamilyInstallDelete, true},
		{"sessions file", "sessions_detailed_weekly.csv", FamilySessions, true},
		{"discovery file", "discovery_standard_daily.csv", FamilyDiscovery, true},
		{"firebase file", "firebase_daily_users.csv", FamilyFirebase, true},
		{"outside the vocabulary", "revenue_report.csv", Family(""), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ClassifyFilename(tt.filename)
			require.Equal(t, tt.matched, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDefinitions_EveryTemplateHasPlaceholder(t *testing.T) {
	t.Parallel()

	for _, def := range Definitions {
		require.Contains(t, def.FilenameTemplate, granularityPlaceholder,
			"definition %s", def.Prefix)
		require.NotEmpty(t, def.Granularities, "definition %s", def.Prefix)
	}
}
