package chanmix

import (
	"encoding/json"
	"fmt"
)

type timelineClip struct {
	Animation             string        `json:"animation"`
	Start                 float64       `json:"start"`
	Duration              float64       `json:"duration"`
	BlendIn               float64       `json:"blendIn,omitempty"`
	BlendOut              float64       `json:"blendOut,omitempty"`
	PreExtrapolation      Extrapolation `json:"preExtrapolation,omitempty"`
	PostExtrapolation     Extrapolation `json:"postExtrapolation,omitempty"`
	PreExtrapolationTime  float64       `json:"preExtrapolationTime,omitempty"`
	PostExtrapolationTime float64       `json:"postExtrapolationTime,omitempty"`
	Speed                 float32       `json:"speed,omitempty"`
}

type timelineTrack struct {
	Channel int            `json:"channel"`
	Clips   []timelineClip `json:"clips"`
}

type timelineFile struct {
	Duration   float64           `json:"duration,omitempty"`
	Loop       bool              `json:"loop,omitempty"`
	ResetPose  bool              `json:"resetPose,omitempty"`
	Animations []scriptAnimation `json:"animations"`
	Tracks     []timelineTrack   `json:"tracks"`
}

// Timeline is a loaded timeline: its animation library, the track state the
// clips are mixed onto and the director that samples them.
type Timeline struct {
	Data     *SkeletonData
	State    *TrackState
	Director *Director[*Animation]
}

// LoadTimeline parses a JSON timeline. Sampling writes to a fresh track state
// and composites it onto sk, which may be nil.
func LoadTimeline(jsonData []byte, sk Skeleton) (*Timeline, error) {
	var f timelineFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	if len(f.Tracks) == 0 {
		return nil, fmt.Errorf("parse timeline: no tracks")
	}

	data := NewSkeletonData()
	for i, a := range f.Animations {
		if a.Name == "" {
			return nil, fmt.Errorf("parse timeline: animation %d has no name", i)
		}
		if data.FindAnimation(a.Name) != nil {
			return nil, fmt.Errorf("parse timeline: duplicate animation %q", a.Name)
		}
		data.Add(&Animation{Name: a.Name, Duration: a.Duration})
	}

	tracks := make([]*ChannelTrack[*Animation], 0, len(f.Tracks))
	for _, t := range f.Tracks {
		ct := &ChannelTrack[*Animation]{Channel: t.Channel}
		for j, c := range t.Clips {
			anim := data.FindAnimation(c.Animation)
			if anim == nil {
				return nil, fmt.Errorf("parse timeline: channel %d clip %d: unknown animation %q", t.Channel, j, c.Animation)
			}
			if c.Duration <= 0 {
				return nil, fmt.Errorf("parse timeline: channel %d clip %d: duration must be positive", t.Channel, j)
			}
			ct.Clips = append(ct.Clips, &Clip[*Animation]{
				ClipTiming: ClipTiming{
					Start:                 c.Start,
					Duration:              c.Duration,
					BlendIn:               c.BlendIn,
					BlendOut:              c.BlendOut,
					PreExtrapolation:      c.PreExtrapolation,
					PostExtrapolation:     c.PostExtrapolation,
					PreExtrapolationTime:  c.PreExtrapolationTime,
					PostExtrapolationTime: c.PostExtrapolationTime,
				},
				Animation:         anim,
				AnimationDuration: anim.Duration,
				Speed:             c.Speed,
			})
		}
		tracks = append(tracks, ct)
	}

	state := NewTrackState(data)
	mixer := NewMixer(MixTarget[*Animation]{State: state, Resolver: DirectResolver{}, Skeleton: sk})
	mixer.ResetPose = f.ResetPose
	d := NewDirector(mixer, tracks...)
	d.Duration = f.Duration
	d.Loop = f.Loop
	return &Timeline{Data: data, State: state, Director: d}, nil
}
