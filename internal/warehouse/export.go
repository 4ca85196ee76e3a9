package warehouse

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTSV materializes a query result as a tab-delimited file in dir,
// header row first, and returns the file path. An empty result returns
// ErrNoData and writes nothing.
func WriteTSV(result Result, dir, filename string) (string, error) {
	if result.Empty() {
		return "", ErrNoData
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = '\t'

	if err := writer.Write(result.Columns); err != nil {
		file.Close()

		return "", fmt.Errorf("write header: %w", err)
	}

	for _, row := range result.Rows {
		if err := writer.Write(row); err != nil {
			file.Close()

			return "", fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		file.Close()

		return "", fmt.Errorf("flush %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}
