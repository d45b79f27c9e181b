package tween

import (
	"fmt"

	"github.com/fogleman/ease"
)

// Easing shapes interpolation progress. t runs from 0 to 1.
type Easing func(t float64) float64

var easings = map[string]Easing{
	"Linear":       ease.Linear,
	"InQuad":       ease.InQuad,
	"OutQuad":      ease.OutQuad,
	"InOutQuad":    ease.InOutQuad,
	"InCubic":      ease.InCubic,
	"OutCubic":     ease.OutCubic,
	"InOutCubic":   ease.InOutCubic,
	"InSine":       ease.InSine,
	"OutSine":      ease.OutSine,
	"InOutSine":    ease.InOutSine,
	"InBack":       ease.InBack,
	"OutBack":      ease.OutBack,
	"InOutBack":    ease.InOutBack,
	"InBounce":     ease.InBounce,
	"OutBounce":    ease.OutBounce,
	"InOutBounce":  ease.InOutBounce,
	"InElastic":    ease.InElastic,
	"OutElastic":   ease.OutElastic,
	"InOutElastic": ease.InOutElastic,
}

// EasingByName looks up a named curve, e.g. "OutBounce".
func EasingByName(name string) (Easing, error) {
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}
