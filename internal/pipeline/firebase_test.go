package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukhold/indlovu/internal/warehouse"
)

// scriptedQuerier serves one result or error per call, in order.
type scriptedQuerier struct {
	results []warehouse.Result
	errs    []error
	call    int
}

func (s *scriptedQuerier) Query(context.Context, string) (warehouse.Result, error) {
	i := s.call
	s.call++

	if i < len(s.errs) && s.errs[i] != nil {
		return warehouse.Result{}, s.errs[i]
	}

	if i < len(s.results) {
		return s.results[i], nil
	}

	return warehouse.Result{}, nil
}

func (s *scriptedQuerier) Close(context.Context) error { return nil }

func TestSyncWarehouse_IsolatesFailuresAndEmptyResults(t *testing.T) {
	t.Parallel()

	data := warehouse.Result{
		Columns: []string{"event_name", "event_count"},
		Rows:    [][]string{{"app_open", "42"}},
	}

	// First report fails, second returns no rows, the rest succeed.
	querier := &scriptedQuerier{
		results: []warehouse.Result{{}, {}, data, data, data},
		errs:    []error{errors.New("query timeout"), nil, nil, nil, nil},
	}

	source := warehouse.NewSource(querier, 30)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	var progress bytes.Buffer

	outcomes := SyncWarehouse(context.Background(), source, dir, logger, &progress)
	require.Len(t, outcomes, len(warehouse.Reports))

	// The stage closes with a tally of files it actually produced.
	require.Contains(t, progress.String(), "\nDownloaded 3 Firebase reports\n")

	require.Equal(t, StateFailed, outcomes[0].State)
	require.Contains(t, outcomes[0].Reason, "query timeout")

	require.Equal(t, StateNoData, outcomes[1].State)
	require.Empty(t, outcomes[1].LocalPath)
	require.NoFileExists(t, filepath.Join(dir, outcomes[1].Filename))

	for _, outcome := range outcomes[2:] {
		require.Equal(t, StateSucceeded, outcome.State, "file %s", outcome.Filename)
		require.Equal(t, SourceFirebase, outcome.Source)
		require.FileExists(t, outcome.LocalPath)

		// Warehouse exports carry the sentinel date range.
		require.Equal(t, "-", outcome.Oldest)
		require.Equal(t, "-", outcome.Newest)
	}
}
