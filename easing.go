package chanmix

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing selects the curve used to interpolate track weights during a fade.
// Each value maps to a gween tween function.
type Easing uint8

const (
	Linear Easing = iota
	InQuad
	OutQuad
	InOutQuad
	InCubic
	OutCubic
	InOutCubic
	InQuart
	OutQuart
	InOutQuart
	InSine
	OutSine
	InOutSine
	InExpo
	OutExpo
	InOutExpo
	InCirc
	OutCirc
	InOutCirc
	OutBack   // overshoots above the target before settling
	OutBounce // bounces below the target before settling
)

// DefaultEasing is used when a Play or Stop call does not name a curve.
const DefaultEasing = InOutSine

var easingFuncs = [...]ease.TweenFunc{
	Linear:     ease.Linear,
	InQuad:     ease.InQuad,
	OutQuad:    ease.OutQuad,
	InOutQuad:  ease.InOutQuad,
	InCubic:    ease.InCubic,
	OutCubic:   ease.OutCubic,
	InOutCubic: ease.InOutCubic,
	InQuart:    ease.InQuart,
	OutQuart:   ease.OutQuart,
	InOutQuart: ease.InOutQuart,
	InSine:     ease.InSine,
	OutSine:    ease.OutSine,
	InOutSine:  ease.InOutSine,
	InExpo:     ease.InExpo,
	OutExpo:    ease.OutExpo,
	InOutExpo:  ease.InOutExpo,
	InCirc:     ease.InCirc,
	OutCirc:    ease.OutCirc,
	InOutCirc:  ease.InOutCirc,
	OutBack:    ease.OutBack,
	OutBounce:  ease.OutBounce,
}

var easingNames = [...]string{
	Linear:     "linear",
	InQuad:     "inQuad",
	OutQuad:    "outQuad",
	InOutQuad:  "inOutQuad",
	InCubic:    "inCubic",
	OutCubic:   "outCubic",
	InOutCubic: "inOutCubic",
	InQuart:    "inQuart",
	OutQuart:   "outQuart",
	InOutQuart: "inOutQuart",
	InSine:     "inSine",
	OutSine:    "outSine",
	InOutSine:  "inOutSine",
	InExpo:     "inExpo",
	OutExpo:    "outExpo",
	InOutExpo:  "inOutExpo",
	InCirc:     "inCirc",
	OutCirc:    "outCirc",
	InOutCirc:  "inOutCirc",
	OutBack:    "outBack",
	OutBounce:  "outBounce",
}

// Func returns the gween tween function for e. Unknown values fall back to
// ease.Linear.
func (e Easing) Func() ease.TweenFunc {
	if int(e) < len(easingFuncs) {
		return easingFuncs[e]
	}
	return ease.Linear
}

// Interpolate returns the eased value between from and to at progress t,
// where t is in [0, 1]. t is clamped to that range.
func (e Easing) Interpolate(from, to, t float32) float32 {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return e.Func()(t, from, to-from, 1)
}

func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", e)
}

// MarshalText implements encoding.TextMarshaler.
func (e Easing) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so easings can be named
// in JSON scripts and environment variables. Names are matched
// case-insensitively.
func (e *Easing) UnmarshalText(text []byte) error {
	for i, name := range easingNames {
		if strings.EqualFold(name, string(text)) {
			*e = Easing(i)
			return nil
		}
	}
	return fmt.Errorf("unknown easing %q", text)
}
