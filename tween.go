package twisty

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing is a named easing curve. Curves change the shape of an interpolation,
// never its endpoints.
type Easing struct {
	Name string
	Func ease.TweenFunc
}

var easings = []Easing{
	{"linear", ease.Linear},
	{"in-quad", ease.InQuad},
	{"out-quad", ease.OutQuad},
	{"in-out-quad", ease.InOutQuad},
	{"in-cubic", ease.InCubic},
	{"out-cubic", ease.OutCubic},
	{"in-out-cubic", ease.InOutCubic},
	{"in-quart", ease.InQuart},
	{"out-quart", ease.OutQuart},
	{"in-out-quart", ease.InOutQuart},
	{"in-quint", ease.InQuint},
	{"out-quint", ease.OutQuint},
	{"in-out-quint", ease.InOutQuint},
	{"in-sine", ease.InSine},
	{"out-sine", ease.OutSine},
	{"in-out-sine", ease.InOutSine},
	{"in-expo", ease.InExpo},
	{"out-expo", ease.OutExpo},
	{"in-out-expo", ease.InOutExpo},
	{"in-circ", ease.InCirc},
	{"out-circ", ease.OutCirc},
	{"in-out-circ", ease.InOutCirc},
	{"in-elastic", ease.InElastic},
	{"out-elastic", ease.OutElastic},
	{"in-out-elastic", ease.InOutElastic},
	{"in-back", ease.InBack},
	{"out-back", ease.OutBack},
	{"in-out-back", ease.InOutBack},
	{"in-bounce", ease.InBounce},
	{"out-bounce", ease.OutBounce},
	{"in-out-bounce", ease.InOutBounce},
}

// Easings returns every supported easing curve. The returned slice MUST NOT be mutated.
func Easings() []Easing {
	return easings
}

// EasingByName looks up an easing curve by name (e.g. "in-out-sine").
func EasingByName(name string) (Easing, bool) {
	for _, e := range easings {
		if e.Name == name {
			return e, true
		}
	}
	return Easing{}, false
}

// LinearEasing is the identity curve.
var LinearEasing = easings[0]

// Tween interpolates a scalar from a start to an end value over a duration in
// seconds. A Tween is replaced, not rewound, when a new animation starts.
type Tween struct {
	tween    *gween.Tween
	easing   string
	from, to float32
	duration float32
	elapsed  float32
	value    float32
	finished bool
}

// NewTween creates a tween from `from` to `to` over duration seconds using the
// easing curve. A zero Easing falls back to linear. A duration <= 0 yields a
// tween that is already finished at its end value.
func NewTween(from, to, duration float32, e Easing) *Tween {
	if e.Func == nil {
		e = LinearEasing
	}
	t := &Tween{
		easing:   e.Name,
		from:     from,
		to:       to,
		duration: duration,
		value:    from,
	}
	if duration <= 0 {
		t.duration = 0
		t.value = to
		t.finished = true
		return t
	}
	t.tween = gween.New(from, to, duration, e.Func)
	return t
}

// Advance moves the tween forward by dt seconds and returns the eased value.
// Elapsed time is clamped to the duration; negative dt is ignored. Once
// finished the value is exactly the end value.
func (t *Tween) Advance(dt float32) float32 {
	if t.finished || dt <= 0 {
		return t.value
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.elapsed = t.duration
	}
	value, done := t.tween.Set(t.elapsed)
	t.value = value
	if done {
		t.value = t.to
		t.finished = true
	}
	return t.value
}

// Finished reports whether elapsed time has reached the duration.
func (t *Tween) Finished() bool {
	return t.finished
}

// Value returns the most recent eased value.
func (t *Tween) Value() float32 {
	return t.value
}

// Elapsed returns the accumulated time in seconds.
func (t *Tween) Elapsed() float32 {
	return t.elapsed
}

// Duration returns the total duration in seconds.
func (t *Tween) Duration() float32 {
	return t.duration
}

// Progress returns elapsed/duration in [0, 1].
func (t *Tween) Progress() float32 {
	if t.duration == 0 {
		return 1
	}
	return t.elapsed / t.duration
}

// From returns the start value.
func (t *Tween) From() float32 {
	return t.from
}

// To returns the end value.
func (t *Tween) To() float32 {
	return t.to
}

// EasingName returns the name of the tween's easing curve.
func (t *Tween) EasingName() string {
	return t.easing
}
