package codec

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// SizingPolicy names a strategy for mapping source dimensions onto the
// requested maximum dimensions.
type SizingPolicy string

const (
	// PolicyFit scales so the output matches one max dimension without
	// exceeding the other, preserving aspect ratio.
	PolicyFit SizingPolicy = "Fit"

	// PolicyFill scales so the output covers both max dimensions, then
	// center-crops the overshoot.
	PolicyFill SizingPolicy = "Fill"

	// PolicyStretch forces the output to exactly the max dimensions,
	// distorting aspect if necessary.
	PolicyStretch SizingPolicy = "Stretch"

	// PolicyKeep passes the source dimensions through unchanged.
	PolicyKeep SizingPolicy = "Keep"

	// PolicyShrinkToFit behaves like Fit but never upscales.
	PolicyShrinkToFit SizingPolicy = "ShrinkToFit"

	// PolicyShrinkToFill behaves like Fill when the source falls short of
	// either bound, otherwise passes through.
	PolicyShrinkToFill SizingPolicy = "ShrinkToFill"
)

// parsePolicy maps a request string onto a policy. Unrecognized values
// fall back to Keep; that is logged, never raised.
func parsePolicy(s string) SizingPolicy {
	switch p := SizingPolicy(s); p {
	case PolicyFit, PolicyFill, PolicyStretch, PolicyKeep, PolicyShrinkToFit, PolicyShrinkToFill:
		return p
	}
	hclog.L().Error("invalid sizing policy, using Keep", "policy", s)
	return PolicyKeep
}

// resolveGeometry computes the output width, height and optional crop
// filter for a source of sw x sh constrained to maxW x maxH under the
// given policy. If the source dimensions or either bound is unknown the
// source passes through untouched; aspect logic needs all four values.
func resolveGeometry(sw, sh, maxW, maxH int, policy SizingPolicy) (int, int, string) {
	if sw <= 0 || sh <= 0 || maxW <= 0 || maxH <= 0 {
		return sw, sh, ""
	}

	switch policy {
	case PolicyFit:
		return fitDims(sw, sh, maxW, maxH)

	case PolicyFill:
		return fillDims(sw, sh, maxW, maxH)

	case PolicyStretch:
		return maxW, maxH, ""

	case PolicyKeep:
		return sw, sh, ""

	case PolicyShrinkToFit:
		if sh > maxH || sw > maxW {
			return fitDims(sw, sh, maxW, maxH)
		}
		return sw, sh, ""

	case PolicyShrinkToFill:
		if sh < maxH || sw < maxW {
			return fillDims(sw, sh, maxW, maxH)
		}
		// Sources already covering both bounds pass through.
		return sw, sh, ""
	}

	return sw, sh, ""
}

// fitDims scales to whichever bound is binding, preserving aspect and
// never exceeding the other bound.
func fitDims(sw, sh, maxW, maxH int) (int, int, string) {
	srcRatio := float64(sh) / float64(sw)
	boundRatio := float64(maxH) / float64(maxW)

	if srcRatio == boundRatio {
		return maxW, maxH, ""
	}
	if srcRatio < boundRatio {
		// Source is wider than the bounds; width binds.
		factor := float64(maxW) / float64(sw)
		return maxW, int(float64(sh) * factor), ""
	}
	factor := float64(maxH) / float64(sh)
	return int(float64(sw) * factor), maxH, ""
}

// fillDims scales so the output covers both bounds, centers, and crops
// the overshooting dimension. The crop offset occupies the horizontal
// slot regardless of which dimension overshoots; the vertical slot stays
// 0, an asymmetry inherited from the policy's original definition.
func fillDims(sw, sh, maxW, maxH int) (int, int, string) {
	srcRatio := float64(sh) / float64(sw)
	boundRatio := float64(maxH) / float64(maxW)

	if srcRatio == boundRatio {
		return maxW, maxH, ""
	}
	if srcRatio < boundRatio {
		// Height binds; the scaled width overshoots and is cropped.
		factor := float64(maxH) / float64(sh)
		w0 := int(float64(sw) * factor)
		dw := (w0 - maxW) / 2
		return w0, maxH, fmt.Sprintf("crop=%d:%d:%d:0", maxW, maxH, dw)
	}
	// Width binds; the scaled height overshoots and is cropped.
	factor := float64(maxW) / float64(sw)
	h0 := int(float64(sh) * factor)
	dh := (h0 - maxH) / 2
	return maxW, h0, fmt.Sprintf("crop=%d:%d:%d:0", maxW, maxH, dh)
}

// evenUp bumps an odd dimension to the next even value. Codecs commonly
// require even dimensions for chroma subsampling.
func evenUp(d int) int {
	if d%2 != 0 {
		return d + 1
	}
	return d
}

// rotateFilter returns the transpose chain compensating for a source
// rotation tag, or "" for rotations that need no compensation.
func rotateFilter(degrees int) string {
	switch degrees {
	case 90:
		return "transpose=1"
	case 180:
		return "transpose=2,transpose=2"
	case 270:
		return "transpose=2"
	}
	return ""
}
