// Package timeline - Phase duration estimation
// Durations depend on project type and surface only. The pricing catalog is
// deliberately not an input: a price change must never move a deadline, and
// vice versa.
package timeline

import "baticost/core/types"

// surfaceBand maps a surface ceiling (m², inclusive) to a construction
// duration; the last band of a table has no ceiling
type surfaceBand struct {
	maxSurface         float64
	constructionMonths int
}

// phaseTable holds the duration bands for one project type
type phaseTable struct {
	designMonths int

	// designCeiling caps the design extension for large surfaces
	designCeiling int

	// largeSurface adds one design month when exceeded, up to the ceiling
	largeSurface float64

	permitMonths int

	bands []surfaceBand
}

var tables = map[types.ProjectType]phaseTable{
	types.ProjectConstruction: {
		designMonths: 2, designCeiling: 4, largeSurface: 200, permitMonths: 3,
		bands: []surfaceBand{
			{maxSurface: 100, constructionMonths: 8},
			{maxSurface: 200, constructionMonths: 10},
			{maxSurface: 400, constructionMonths: 14},
			{constructionMonths: 18},
		},
	},
	types.ProjectRenovation: {
		designMonths: 1, designCeiling: 3, largeSurface: 150, permitMonths: 2,
		bands: []surfaceBand{
			{maxSurface: 80, constructionMonths: 4},
			{maxSurface: 200, constructionMonths: 7},
			{constructionMonths: 10},
		},
	},
	types.ProjectExtension: {
		designMonths: 2, designCeiling: 3, largeSurface: 100, permitMonths: 3,
		bands: []surfaceBand{
			{maxSurface: 50, constructionMonths: 5},
			{maxSurface: 120, constructionMonths: 8},
			{constructionMonths: 11},
		},
	},
	types.ProjectOptimization: {
		designMonths: 1, designCeiling: 2, largeSurface: 150, permitMonths: 1,
		bands: []surfaceBand{
			{maxSurface: 100, constructionMonths: 3},
			{constructionMonths: 5},
		},
	},
	types.ProjectDivision: {
		designMonths: 1, designCeiling: 2, largeSurface: 200, permitMonths: 2,
		bands: []surfaceBand{
			{maxSurface: 150, constructionMonths: 4},
			{constructionMonths: 6},
		},
	},
	types.ProjectDesign: {
		designMonths: 2, designCeiling: 4, largeSurface: 300, permitMonths: 1,
		bands: []surfaceBand{
			{constructionMonths: 0},
		},
	},
	types.ProjectElevation: {
		designMonths: 2, designCeiling: 4, largeSurface: 80, permitMonths: 3,
		bands: []surfaceBand{
			{maxSurface: 60, constructionMonths: 7},
			{maxSurface: 120, constructionMonths: 10},
			{constructionMonths: 13},
		},
	},
}

// fallback covers project types without a dedicated table; the validator
// makes this unreachable for engine callers, but direct callers get a
// conservative answer instead of a zero timeline.
var fallback = phaseTable{
	designMonths: 2, designCeiling: 4, largeSurface: 200, permitMonths: 3,
	bands: []surfaceBand{
		{constructionMonths: 12},
	},
}

// Estimate derives the phase durations for a project type and surface
func Estimate(projectType types.ProjectType, surface float64) types.TimelineEstimate {
	table, ok := tables[projectType]
	if !ok {
		table = fallback
	}

	design := table.designMonths
	if surface > table.largeSurface && design < table.designCeiling {
		design++
	}

	construction := table.bands[len(table.bands)-1].constructionMonths
	for _, b := range table.bands {
		if b.maxSurface > 0 && surface <= b.maxSurface {
			construction = b.constructionMonths
			break
		}
	}

	return types.TimelineEstimate{
		DesignMonths:       design,
		PermitMonths:       table.permitMonths,
		ConstructionMonths: construction,
		TotalMonths:        design + table.permitMonths + construction,
	}
}
