// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strconv"
	"strings"
)

// Tables maps a report name to its rows. Each row maps a column name
// to a JSON scalar (number, string, or bool).
type Tables map[string]Table

// Table is one report table.
type Table []map[string]any

// ZoneSummaryReport is the report holding per-zone floor area, volume,
// and exterior wall area.
const ZoneSummaryReport = "Zone Summary"

// ZoneSummary is the typed view of one Zone Summary row.
type ZoneSummary struct {
	Zone                  string
	Area                  float64
	Volume                float64
	ExteriorGrossWallArea float64
	Multiplier            int
	PartOfTotalFloorArea  bool
	IsPlenum              bool
}

// ZoneSummary returns the Zone Summary row for the named zone. Zone
// names compare case-insensitively since engines upper-case them in
// reports.
func (t Tables) ZoneSummary(zone string) (ZoneSummary, bool) {
	for _, row := range t[ZoneSummaryReport] {
		name, _ := row["Zone"].(string)
		if !strings.EqualFold(name, zone) {
			continue
		}
		summary := ZoneSummary{
			Zone:                  name,
			Area:                  numberOf(row["Area"]),
			Volume:                numberOf(row["Volume"]),
			ExteriorGrossWallArea: numberOf(row["Exterior Gross Wall Area"]),
			Multiplier:            int(numberOf(row["Multipliers"])),
			PartOfTotalFloorArea:  true,
			IsPlenum:              boolOf(row["Is Plenum"]),
		}
		if value, ok := row["Part of Total Floor Area"]; ok {
			summary.PartOfTotalFloorArea = boolOf(value)
		}
		return summary, true
	}
	return ZoneSummary{}, false
}

// numberOf converts a JSON scalar to float64. Report tables sometimes
// carry numbers as strings; unparseable values are zero.
func numberOf(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// boolOf converts a JSON scalar to bool, accepting the "Yes"/"No"
// spelling reports use.
func boolOf(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "yes", "true", "1":
			return true
		}
		return false
	case float64:
		return typed != 0
	default:
		return false
	}
}
