// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pure-import/internal/pipeline"
	"github.com/pdiddy/pure-import/pkg/types"
)

func TestWriteXLSX(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	result := pipeline.BatchResult{
		RunID:     "run-1",
		Submitted: 1,
		Skipped:   1,
		Started:   start,
		Finished:  start.Add(time.Minute),
		Outcomes: []pipeline.Outcome{
			{
				RecordID: "r1", Title: "First", Type: types.OutputArticle,
				Status: pipeline.StatusSubmitted, Internal: 1, External: 1,
				Organizations: 2, JournalUUID: "j-1", ResearchOutputUUID: "ro-1",
			},
			{
				RecordID: "r2", Title: "Second", Type: types.OutputBook,
				Status: pipeline.StatusSkipped, Stage: pipeline.StageReconcile,
				Err: errors.New("no internal contributors"),
			},
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(outcomesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Record", rows[0][0])
	assert.Equal(t, []string{"r1", "First", "article", "submitted", "", "", "1", "1", "0", "2", "j-1", "ro-1"}, rows[1])
	assert.Equal(t, "skipped", rows[2][3])
	assert.Equal(t, "reconcile", rows[2][4])
	assert.Equal(t, "no internal contributors", rows[2][5])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Run", "run-1"}, summary[0])
	assert.Equal(t, []string{"Total", "2"}, summary[6])
}

func TestWriteXLSXBadPath(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "report.xlsx"), pipeline.BatchResult{})
	assert.Error(t, err)
}
