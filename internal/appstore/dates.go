package appstore

import (
	"encoding/csv"
	"os"
	"slices"
)

// dateColumn is the header name of the date column in report files.
const dateColumn = "Date"

// dateSentinel is returned for both bounds when no dates are detectable.
const dateSentinel = "-"

// DateRange scans a tab-delimited report file and returns its oldest and
// newest Date values. Only values starting with a digit count, which skips
// footer rows like "Total". Ordering is lexicographic; that is correct for
// the YYYY-MM-DD values these reports carry and breaks silently for any
// other date format. Malformed or missing files yield ("-", "-").
func DateRange(path string) (oldest, newest string) {
	file, err := os.Open(path)
	if err != nil {
		return dateSentinel, dateSentinel
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return dateSentinel, dateSentinel
	}

	dateIdx := slices.Index(header, dateColumn)
	if dateIdx < 0 {
		return dateSentinel, dateSentinel
	}

	seen := make(map[string]struct{})

	for {
		row, err := reader.Read()
		if err != nil {
			break
		}

		if dateIdx >= len(row) {
			continue
		}

		value := row[dateIdx]
		if value != "" && value[0] >= '0' && value[0] <= '9' {
			seen[value] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return dateSentinel, dateSentinel
	}

	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}

	slices.Sort(dates)

	return dates[0], dates[len(dates)-1]
}
