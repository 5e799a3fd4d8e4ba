// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reduce

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/archetype/lib/model"
	"github.com/bureau-foundation/archetype/lib/umi"
)

// CoreDetection selects how zones are classified as core or perimeter.
type CoreDetection string

const (
	// CoreByGeometry classifies a zone as core when none of its
	// vertical surfaces faces outdoors.
	CoreByGeometry CoreDetection = "geometry"

	// CoreByTable classifies a zone as core when its name contains
	// "core" or its Zone Summary row reports no exterior wall area.
	CoreByTable CoreDetection = "table"
)

// ParseCoreDetection parses a core detection name. The empty string
// selects [CoreByGeometry].
func ParseCoreDetection(name string) (CoreDetection, error) {
	switch CoreDetection(strings.ToLower(name)) {
	case "", CoreByGeometry:
		return CoreByGeometry, nil
	case CoreByTable:
		return CoreByTable, nil
	default:
		return "", fmt.Errorf("unknown core detection %q (want geometry or table)", name)
	}
}

// Options control a reduction.
type Options struct {
	// CoreDetection selects the zone classification. Empty means
	// [CoreByGeometry].
	CoreDetection CoreDetection

	// AllZones keeps the reduced-from zones on the template so they
	// are written alongside Core and Perimeter.
	AllZones bool
}

// Fingerprint is a stable string of every option that changes the
// reduced output. zoneWeight is the registry's zone weighting, which
// lives outside Options because it belongs to the registry.
func (o Options) Fingerprint(zoneWeight umi.ZoneWeight) string {
	detection := o.CoreDetection
	if detection == "" {
		detection = CoreByGeometry
	}
	return fmt.Sprintf("zone_weight=%s;core_detection=%s;all_zones=%t", zoneWeight, detection, o.AllZones)
}

// classifier decides whether a translated zone is core.
type classifier func(record *model.Zone, zone *umi.Zone) bool

func (o Options) classifier(building *model.Building) classifier {
	if o.CoreDetection != CoreByTable {
		return func(_ *model.Zone, zone *umi.Zone) bool { return zone.IsCore() }
	}
	return func(record *model.Zone, zone *umi.Zone) bool {
		if strings.Contains(strings.ToLower(record.Name), "core") {
			return true
		}
		if summary, ok := building.Tables.ZoneSummary(record.Name); ok {
			return summary.ExteriorGrossWallArea == 0
		}
		return zone.IsCore()
	}
}

// excluded reports why a zone takes no part in reduction, or "" when
// it does.
func excluded(building *model.Building, record *model.Zone) string {
	if record.IsPlenum {
		return "plenum"
	}
	if record.ExcludedFromFloorArea {
		return "not part of total floor area"
	}
	if summary, ok := building.Tables.ZoneSummary(record.Name); ok {
		if summary.IsPlenum {
			return "plenum"
		}
		if !summary.PartOfTotalFloorArea {
			return "not part of total floor area"
		}
	}
	return ""
}

// Building reduces one building model to a template registered in r.
// It returns [umi.ErrNoZones] (wrapped) when the model has no zone that
// can take part in reduction.
func Building(r *umi.Registry, building *model.Building, options Options) (*umi.BuildingTemplate, error) {
	logger := r.Logger().With("building", building.Name)
	builder := umi.NewBuilder(r, building)
	isCore := options.classifier(building)

	var cores, perimeters []*umi.Zone
	for i := range building.Zones {
		record := &building.Zones[i]
		if reason := excluded(building, record); reason != "" {
			logger.Debug("zone excluded from reduction", "zone", record.Name, "reason", reason)
			continue
		}
		zone, err := builder.Zone(record)
		if err != nil {
			return nil, fmt.Errorf("building %s: zone %s: %w", building.Name, record.Name, err)
		}
		if isCore(record, zone) {
			cores = append(cores, zone)
		} else {
			perimeters = append(perimeters, zone)
		}
	}
	if len(cores) == 0 && len(perimeters) == 0 {
		return nil, fmt.Errorf("building %s: %w", building.Name, umi.ErrNoZones)
	}

	core, err := combineZones(r, cores)
	if err != nil {
		return nil, fmt.Errorf("building %s: reducing core zones: %w", building.Name, err)
	}
	perimeter, err := combineZones(r, perimeters)
	if err != nil {
		return nil, fmt.Errorf("building %s: reducing perimeter zones: %w", building.Name, err)
	}
	switch {
	case core == nil:
		logger.Warn("no core zones, using perimeter as core", "perimeter_zones", len(perimeters))
		core = perimeter
	case perimeter == nil:
		logger.Warn("no perimeter zones, using core as perimeter", "core_zones", len(cores))
		perimeter = core
	}

	structure, err := builder.Structure()
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", building.Name, err)
	}

	template := umi.DefaultBuildingTemplate(building.Name)
	template.DataSource = building.Name
	template.Core = core
	template.Perimeter = perimeter
	template.Structure = structure
	template.Windows = perimeter.Windows
	if template.Windows == nil {
		template.Windows = core.Windows
	}
	if options.AllZones {
		template.Cores = cores
		template.Perimeters = perimeters
	}
	applyInfo(&template, building.Template)

	registered, err := umi.NewBuildingTemplate(r, template)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", building.Name, err)
	}
	if err := registered.Validate(r); err != nil {
		return nil, fmt.Errorf("building %s: %w", building.Name, err)
	}

	logger.Info("building reduced",
		slog.Int("core_zones", len(cores)),
		slog.Int("perimeter_zones", len(perimeters)),
		slog.Float64("core_area", core.Area()),
		slog.Float64("perimeter_area", perimeter.Area()),
	)
	return registered, nil
}

// combineZones folds zones pairwise. Each step weights the running
// aggregate by its accumulated extent, so the result equals a single
// weighted mean over all inputs. Value-equal zones still add their
// area and volume. It returns nil for no zones.
func combineZones(r *umi.Registry, zones []*umi.Zone) (*umi.Zone, error) {
	if len(zones) == 0 {
		return nil, nil
	}
	combined := zones[0]
	for _, zone := range zones[1:] {
		next, err := combined.Accumulate(r, zone)
		if err != nil {
			return nil, err
		}
		combined = next
	}
	return combined, nil
}

// applyInfo copies descriptive model metadata onto the template. Zero
// values keep the template defaults.
func applyInfo(template *umi.BuildingTemplate, info *model.TemplateInfo) {
	if info == nil {
		return
	}
	if info.Country != "" {
		template.Country = []string{info.Country}
	}
	if info.ClimateZone != "" {
		template.ClimateZone = []string{info.ClimateZone}
	}
	template.YearFrom = info.YearFrom
	template.YearTo = info.YearTo
	template.Authors = info.Authors
	template.AuthorEmails = info.AuthorEmails
	if info.Lifespan > 0 {
		template.Lifespan = info.Lifespan
	}
	if info.PartitionRatio > 0 {
		template.PartitionRatio = info.PartitionRatio
	}
	if info.DefaultWindowToWallRatio > 0 {
		template.DefaultWindowToWallRatio = info.DefaultWindowToWallRatio
	}
}
