package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
	"github.com/xuri/excelize/v2"
)

// parseRange parses a range reference like $D$7:$F$8 into a MergedRange.
// A single cell reference yields a one-cell range.
func parseRange(ref string) (models.MergedRange, error) {
	// Remove $ signs
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.MergedRange{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.MergedRange{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.MergedRange{}, err
	}

	return models.MergedRange{
		MinRow: min(startRow, endRow),
		MaxRow: max(startRow, endRow),
		MinCol: min(startCol, endCol),
		MaxCol: max(startCol, endCol),
	}, nil
}

// RangeRef renders a merged range as "D7:F8".
func RangeRef(m models.MergedRange) string {
	start, err := excelize.CoordinatesToCellName(m.MinCol, m.MinRow)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(m.MaxCol, m.MaxRow)
	if err != nil {
		return ""
	}
	return start + ":" + end
}
