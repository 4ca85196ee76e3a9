package appstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeReportFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		wantOldest string
		wantNewest string
	}{
		{
			"skips non-numeric footer rows",
			"Date\tUnits\n2024-01-05\t3\n2024-01-01\t9\nTotal\t12\n",
			"2024-01-01",
			"2024-01-05",
		},
		{
			"single date",
			"Date\tUnits\n2024-02-20\t1\n",
			"2024-02-20",
			"2024-02-20",
		},
		{
			"duplicate dates collapse",
			"Date\tUnits\n2024-03-01\t1\n2024-03-01\t2\n2024-03-02\t3\n",
			"2024-03-01",
			"2024-03-02",
		},
		{
			"no date column",
			"Day\tUnits\n2024-01-01\t1\n",
			"-",
			"-",
		},
		{
			"header only",
			"Date\tUnits\n",
			"-",
			"-",
		},
		{
			"empty file",
			"",
			"-",
			"-",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeReportFile(t, tt.content)

			oldest, newest := DateRange(path)
			require.Equal(t, tt.wantOldest, oldest)
			require.Equal(t, tt.wantNewest, newest)
		})
	}
}

func TestDateRange_MissingFile(t *testing.T) {
	t.Parallel()

	oldest, newest := DateRange(filepath.Join(t.TempDir(), "absent.csv"))
	require.Equal(t, "-", oldest)
	require.Equal(t, "-", newest)
}
