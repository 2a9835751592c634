package chanmix

import (
	"encoding/json"
	"fmt"
	"math"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action    string   `json:"action"`
	Label     string   `json:"label,omitempty"`
	Channel   int      `json:"channel,omitempty"`
	Animation string   `json:"animation,omitempty"`
	Wrap      WrapMode `json:"wrap,omitempty"`
	Blend     float32  `json:"blend,omitempty"`
	Easing    *Easing  `json:"easing,omitempty"`
	Weight    *float32 `json:"weight,omitempty"`
	Queued    bool     `json:"queued,omitempty"`
	Value     float32  `json:"value,omitempty"`
	Frames    int      `json:"frames,omitempty"`
	Seconds   float32  `json:"seconds,omitempty"`
}

type scriptAnimation struct {
	Name     string  `json:"name"`
	Duration float32 `json:"duration"`
}

// script is the top-level JSON structure for a script.
type script struct {
	FPS        float32           `json:"fps,omitempty"`
	Animations []scriptAnimation `json:"animations,omitempty"`
	Steps      []scriptStep      `json:"steps"`
}

// DefaultScriptFPS is the tick rate used when a script names none.
const DefaultScriptFPS = 60

// ScriptRunner sequences Controller calls across frames. Steps run in order
// within a frame until a wait step or the end of the script.
type ScriptRunner struct {
	steps     []scriptStep
	data      *SkeletonData
	fps       float32
	cursor    int
	waitCount int
	frame     int
	done      bool

	// OnSnapshot is called for every snapshot step with its label and the
	// frame it ran on.
	OnSnapshot func(label string, frame int)
}

// LoadScript parses a JSON script and returns a ScriptRunner ready to drive a
// Controller.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	if s.FPS < 0 {
		return nil, fmt.Errorf("parse script: negative fps %v", s.FPS)
	}
	if s.FPS == 0 {
		s.FPS = DefaultScriptFPS
	}

	data := NewSkeletonData()
	for i, a := range s.Animations {
		if a.Name == "" {
			return nil, fmt.Errorf("parse script: animation %d has no name", i)
		}
		if a.Duration < 0 {
			return nil, fmt.Errorf("parse script: animation %q has negative duration", a.Name)
		}
		if data.FindAnimation(a.Name) != nil {
			return nil, fmt.Errorf("parse script: duplicate animation %q", a.Name)
		}
		data.Add(&Animation{Name: a.Name, Duration: a.Duration})
	}

	for i, st := range s.Steps {
		if err := validateStep(st); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps, data: data, fps: s.FPS}, nil
}

func validateStep(st scriptStep) error {
	switch st.Action {
	case "play", "time", "speed", "weight":
		if st.Animation == "" {
			return fmt.Errorf("%s needs an animation", st.Action)
		}
	case "wait":
		if st.Frames < 0 || st.Seconds < 0 {
			return fmt.Errorf("negative wait")
		}
	case "stop", "stopAll", "snapshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Data returns the animations declared by the script.
func (r *ScriptRunner) Data() *SkeletonData {
	return r.data
}

// FrameTime returns the length of one frame in seconds.
func (r *ScriptRunner) FrameTime() float32 {
	return 1 / r.fps
}

// Frame returns the number of frames stepped so far.
func (r *ScriptRunner) Frame() int {
	return r.frame
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step runs the steps due this frame against c.
func (r *ScriptRunner) Step(c Controller) {
	if r.done {
		return
	}
	defer func() { r.frame++ }()

	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++
		if r.exec(c, st) {
			break
		}
	}
	r.checkDone()
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// exec runs one step and reports whether the frame ends with it.
func (r *ScriptRunner) exec(c Controller, st scriptStep) bool {
	switch st.Action {
	case "play":
		opts := []Option{WithWrap(st.Wrap), WithBlend(st.Blend)}
		if st.Easing != nil {
			opts = append(opts, WithEasing(*st.Easing))
		}
		if st.Weight != nil {
			opts = append(opts, WithWeight(*st.Weight))
		}
		if st.Queued {
			opts = append(opts, Queued())
		}
		c.Play(st.Channel, st.Animation, opts...)
	case "stop":
		opts := []Option{WithBlend(st.Blend)}
		if st.Easing != nil {
			opts = append(opts, WithEasing(*st.Easing))
		}
		c.Stop(st.Channel, opts...)
	case "stopAll":
		c.StopAll()
	case "time":
		c.SetAnimationTime(st.Channel, st.Animation, st.Value)
	case "speed":
		c.SetAnimationSpeed(st.Channel, st.Animation, st.Value)
	case "weight":
		c.SetAnimationWeight(st.Channel, st.Animation, st.Value)
	case "snapshot":
		if r.OnSnapshot != nil {
			r.OnSnapshot(st.Label, r.frame)
		}
	case "wait":
		frames := st.Frames
		if st.Seconds > 0 {
			frames += int(math.Ceil(float64(st.Seconds * r.fps)))
		}
		if frames > 0 {
			r.waitCount = frames - 1 // this frame counts as one
			return true
		}
	}
	return false
}

// Run steps the script against c until it is done, advancing c by one frame
// after every step. It stops after maxFrames frames when maxFrames is
// positive, and returns the number of frames run.
func (r *ScriptRunner) Run(c Controller, maxFrames int) int {
	dt := r.FrameTime()
	n := 0
	for !r.done && (maxFrames <= 0 || n < maxFrames) {
		r.Step(c)
		c.Update(dt)
		n++
	}
	return n
}
