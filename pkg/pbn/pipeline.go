package pbn

import (
	"github.com/willibrandon/mtlog/core"
)

// PipelineResult is everything a serializer needs, handed back from Run
// (§6). It owns the same underlying arrays components mutated in place.
type PipelineResult struct {
	W, H     int
	Colors   ColorTable
	Index    *IndexGrid
	Facets   *FacetResult
}

// Run executes the full image→regions pipeline (§2, §5): quantize, clean,
// build, reduce, trace, smooth, locate — strictly sequential, no internal
// concurrency. logger may be nil; onProgress may be nil.
func Run(img *Image, settings Settings, logger core.Logger, onProgress ProgressFunc) (*PipelineResult, error) {
	if img.W <= 0 || img.H <= 0 {
		return nil, invalidInput("image has zero size (%dx%d)", img.W, img.H)
	}

	logf(logger, "Quantizing {Width}x{Height} image to {Clusters} colors in {ColorSpace} space",
		img.W, img.H, settings.KMeansClusters, settings.ColorSpace)
	report(onProgress, "quantize", 0)
	quant, err := Quantize(img, settings)
	if err != nil {
		return nil, err
	}
	report(onProgress, "quantize", 1)

	logf(logger, "Cleaning narrow strips over {Passes} passes", settings.NarrowStripPasses)
	report(onProgress, "clean", 0)
	changed := CleanNarrowStrips(quant.Index, quant.Colors, settings.NarrowStripPasses)
	logf(logger, "Narrow-strip cleanup changed {Changed} pixels", changed)
	report(onProgress, "clean", 1)

	logf(logger, "Building facets")
	report(onProgress, "build", 0)
	facets := BuildFacets(quant.Index, quant.Colors)
	BuildAllNeighbors(facets)
	logf(logger, "Built {FacetCount} facets", facets.GetFacetCount())
	report(onProgress, "build", 1)

	logf(logger, "Reducing facets (threshold={Threshold}, maxFacets={Max}, largeFirst={LargeFirst})",
		settings.RemoveFacetsSmallerThan, settings.maxFacets(), settings.RemoveLargeFirst)
	ReduceFacets(facets, quant.Index, quant.Colors, settings.RemoveFacetsSmallerThan, settings.RemoveLargeFirst, settings.maxFacets(), onProgress)
	logf(logger, "{FacetCount} facets remain after reduction", facets.GetFacetCount())

	if err := checkInvariants(facets, quant.Index, quant.Colors); err != nil {
		return nil, err
	}

	logf(logger, "Tracing and smoothing borders ({Passes} passes)", settings.HalveBorderSegments)
	report(onProgress, "trace", 0)
	TraceBorders(facets)
	SmoothBorders(facets, settings.HalveBorderSegments)
	report(onProgress, "trace", 1)

	logf(logger, "Locating labels")
	report(onProgress, "locate", 0)
	LocateLabels(facets)
	report(onProgress, "locate", 1)

	return &PipelineResult{
		W:      img.W,
		H:      img.H,
		Colors: quant.Colors,
		Index:  quant.Index,
		Facets: facets,
	}, nil
}

func report(onProgress ProgressFunc, stage string, fraction float64) {
	if onProgress != nil {
		onProgress(stage, fraction)
	}
}

func logf(logger core.Logger, template string, args ...any) {
	if logger != nil {
		logger.Information(template, args...)
	}
}

// checkInvariants asserts the post-reduction region-graph invariants
// (§7/§8/§9's open question): palette validity, FID/color agreement, and
// that every present facet actually holds at least one pixel. A violation
// is fatal — reported as InvariantViolated rather than silently handing
// back an inconsistent grid.
func checkInvariants(fr *FacetResult, idx *IndexGrid, colors ColorTable) error {
	owned := make([]bool, len(fr.Facets))
	for y := 0; y < fr.Height; y++ {
		for x := 0; x < fr.Width; x++ {
			ci := idx.Get(x, y)
			if ci < 0 || ci >= len(colors) {
				return invariantViolated("IDX[%d,%d]=%d out of range [0,%d)", x, y, ci, len(colors))
			}

			fid := fr.FacetMap.Get(x, y)
			facet := fr.Get(fid)
			if facet == nil {
				return invariantViolated("FID[%d,%d]=%d refers to an absent facet", x, y, fid)
			}
			owned[fid] = true
			if colors[ci] != colors[facet.ColorIndex] {
				return invariantViolated("color mismatch at (%d,%d): IDX color %v != facet %d color %v",
					x, y, colors[ci], fid, colors[facet.ColorIndex])
			}
		}
	}
	for id, f := range fr.Facets {
		if f != nil && !owned[id] {
			return invariantViolated("facet %d is present but owns no pixel", id)
		}
	}
	return nil
}
