package chanmix

// playRequest collects the parameters of a Play or Stop call.
type playRequest struct {
	anim      *Animation
	wrap      WrapMode
	blendTime float32
	easing    Easing
	weight    float32
	queued    bool
}

// Option configures a single Play or Stop call. Stop only reads the blend
// time and easing.
type Option func(*playRequest)

// WithWrap sets the wrap mode of the played animation. Only WrapLoop loops.
func WithWrap(mode WrapMode) Option {
	return func(r *playRequest) { r.wrap = mode }
}

// WithBlend fades over the given number of seconds instead of cutting.
// Values <= 0 cut immediately.
func WithBlend(seconds float32) Option {
	return func(r *playRequest) { r.blendTime = seconds }
}

// WithEasing sets the curve used for the fade.
func WithEasing(e Easing) Option {
	return func(r *playRequest) { r.easing = e }
}

// WithWeight sets the weight the animation plays at once any fade-in ends.
// The default is 1.
func WithWeight(w float32) Option {
	return func(r *playRequest) { r.weight = w }
}

// Queued defers the Play until the channel's current animation is within the
// blend time of its end, or reaches its end during the current frame. The
// crossfade then runs over the time left, so it finishes as the current
// animation does. A looping animation counts its end once per period.
// Without an active animation, or on a channel fading out, it plays
// immediately.
func Queued() Option {
	return func(r *playRequest) { r.queued = true }
}

func newPlayRequest(easing Easing, opts []Option) playRequest {
	r := playRequest{weight: 1, easing: easing}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
