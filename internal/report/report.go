// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes import batch results for people who review them in a
// spreadsheet.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pure-import/internal/pipeline"
)

const (
	outcomesSheet = "Outcomes"
	summarySheet  = "Summary"
)

var outcomeHeader = []any{
	"Record", "Title", "Type", "Status", "Stage", "Error",
	"Internal", "External", "Dropped", "Organizations", "Journal", "Research output",
}

// WriteXLSX saves result to path as a workbook with an Outcomes sheet (one
// row per record) and a Summary sheet.
func WriteXLSX(path string, result pipeline.BatchResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), outcomesSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(outcomesSheet, "A1", &outcomeHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, o := range result.Outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		row := []any{
			o.RecordID, o.Title, string(o.Type), string(o.Status), string(o.Stage), errText,
			o.Internal, o.External, o.Dropped, o.Organizations, o.JournalUUID, o.ResearchOutputUUID,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(outcomesSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(outcomesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summary := [][]any{
		{"Run", result.RunID},
		{"Started", result.Started.Format(time.RFC3339)},
		{"Finished", result.Finished.Format(time.RFC3339)},
		{"Submitted", result.Submitted},
		{"Skipped", result.Skipped},
		{"Failed", result.Failed},
		{"Total", result.Total()},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}
