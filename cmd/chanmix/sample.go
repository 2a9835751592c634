package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/phanxgames/chanmix"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type SampleParams struct {
	Timeline string  `pos:"true" required:"true" help:"Timeline JSON file."`
	From     float64 `short:"f" help:"First cursor to sample, in seconds." default:"0"`
	To       float64 `short:"t" help:"Last cursor to sample. Negative uses the timeline's end." default:"-1"`
	Step     float64 `short:"s" help:"Cursor step in seconds." default:"0.1"`
}

func SampleCmd() *cobra.Command {
	return boa.CmdT[SampleParams]{
		Use:         "sample",
		Short:       "Evaluate a timeline over a cursor range and print the track stack",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *SampleParams, cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(params.Timeline)
			if err != nil {
				fmt.Fprintf(os.Stderr, "sample: %v\n", err)
				os.Exit(1)
			}
			if err := sampleTimeline(params, data, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "sample: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func sampleTimeline(params *SampleParams, timeline []byte, out io.Writer) error {
	if params.Step <= 0 {
		return fmt.Errorf("step must be positive, got %v", params.Step)
	}
	tl, err := chanmix.LoadTimeline(timeline, nil)
	if err != nil {
		return err
	}
	to := params.To
	if to < 0 {
		to = timelineEnd(tl)
	}

	steps := 0
	for i := 0; ; i++ {
		cursor := params.From + float64(i)*params.Step
		if cursor > to+params.Step*1e-6 {
			break
		}
		tl.Director.Sample(cursor)
		renderState(out, fmt.Sprintf("t=%.3f", cursor), tl.State)
		steps++
	}
	_, err = fmt.Fprintf(out, "%d samples\n", steps)
	return err
}

// timelineEnd returns the timeline's duration, or the end of its last clip
// window when no duration is set.
func timelineEnd(tl *chanmix.Timeline) float64 {
	if tl.Director.Duration > 0 {
		return tl.Director.Duration
	}
	clips := lo.FlatMap(tl.Director.Tracks, func(t *chanmix.ChannelTrack[*chanmix.Animation], _ int) []*chanmix.Clip[*chanmix.Animation] {
		return t.Clips
	})
	return lo.Max(lo.Map(clips, func(c *chanmix.Clip[*chanmix.Animation], _ int) float64 {
		return c.ExtrapolatedStart() + c.ExtrapolatedDuration()
	}))
}
