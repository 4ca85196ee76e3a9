package publish

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/yukhold/indlovu/internal/pipeline"
	"github.com/yukhold/indlovu/internal/tabstore"
)

// startCell is where every upload begins; uploads are full replaces, so
// nothing ever writes below existing content.
const startCell = "A1"

// Publisher replays succeeded outcomes into the tabular store.
type Publisher struct {
	store  tabstore.Store
	logger *slog.Logger
	out    io.Writer
}

// NewPublisher builds a Publisher writing progress to out.
func NewPublisher(store tabstore.Store, logger *slog.Logger, out io.Writer) *Publisher {
	return &Publisher{store: store, logger: logger, out: out}
}

// Publish uploads each succeeded outcome's local file into its destination
// table: clear first, then the whole file, header row included. Files
// without a destination mapping are skipped with a reason; upload errors
// are isolated per file. Returns the number of files uploaded.
func (p *Publisher) Publish(ctx context.Context, outcomes []pipeline.Outcome) int {
	uploaded := 0

	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			continue
		}

		tableName, ok := DestinationTables[outcome.Filename]
		if !ok {
			fmt.Fprintf(p.out, "  Skipping %s: no table mapping\n", outcome.Filename)
			p.logger.Info("no destination mapping", "file", outcome.Filename)

			continue
		}

		fmt.Fprintf(p.out, "Uploading: %s -> %q...\n", outcome.Filename, tableName)

		rows, err := p.upload(ctx, outcome.LocalPath, tableName)
		if err != nil {
			fmt.Fprintf(p.out, "  Error: %s\n", err)
			p.logger.Warn("upload failed", "file", outcome.Filename, "reason", err.Error())

			continue
		}

		fmt.Fprintf(p.out, "  Uploaded %s rows\n", humanize.Comma(int64(rows)))
		uploaded++
	}

	return uploaded
}

// upload performs one full-replace write and returns the row count.
func (p *Publisher) upload(ctx context.Context, path, tableName string) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		return 0, nil
	}

	table, err := p.store.GetOrCreateTable(ctx, tableName)
	if err != nil {
		return 0, err
	}

	if err := p.store.Clear(ctx, table); err != nil {
		return 0, err
	}

	if err := p.store.Write(ctx, table, rows, startCell); err != nil {
		return 0, err
	}

	return len(rows), nil
}

// readRows reads a tab-delimited report file, header row included.
func readRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return rows, nil
}
