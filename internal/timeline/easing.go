package timeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// ErrUnknownEasing is returned for an easing name with no curve.
var ErrUnknownEasing = errors.New("unknown easing")

var easings = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-quart":      ease.InQuart,
	"out-quart":     ease.OutQuart,
	"in-out-quart":  ease.InOutQuart,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-expo":       ease.InExpo,
	"out-expo":      ease.OutExpo,
	"in-out-expo":   ease.InOutExpo,
	"in-circ":       ease.InCirc,
	"out-circ":      ease.OutCirc,
	"in-out-circ":   ease.InOutCirc,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"out-bounce":    ease.OutBounce,
	"out-elastic":   ease.OutElastic,
	"in-out-bounce": ease.InOutBounce,
}

// Easing returns the curve registered under name.
func Easing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// EasingNames lists the registered curves in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
