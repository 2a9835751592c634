package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/phanxgames/chanmix"
	"github.com/spf13/cobra"
)

type RunParams struct {
	Script    string `pos:"true" required:"true" help:"Script JSON file."`
	Every     int    `short:"e" help:"Also print the track table every N frames (0 prints snapshots only)." default:"0"`
	MaxFrames int    `short:"m" help:"Stop after this many frames." default:"100000"`
	Verbose   bool   `short:"v" help:"Log layout changes to stderr."`
}

func RunCmd() *cobra.Command {
	return boa.CmdT[RunParams]{
		Use:         "run",
		Short:       "Play a script against an animator and print its tracks",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *RunParams, cmd *cobra.Command, args []string) {
			cfg, err := chanmix.ConfigFromEnv()
			if err != nil {
				fmt.Fprintf(os.Stderr, "run: %v\n", err)
				os.Exit(1)
			}
			data, err := os.ReadFile(params.Script)
			if err != nil {
				fmt.Fprintf(os.Stderr, "run: %v\n", err)
				os.Exit(1)
			}
			if err := runScript(params, cfg, data, os.Stdout, newLogger(params.Verbose)); err != nil {
				fmt.Fprintf(os.Stderr, "run: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runScript(params *RunParams, cfg chanmix.Config, script []byte, out io.Writer, logger *slog.Logger) error {
	runner, err := chanmix.LoadScript(script)
	if err != nil {
		return err
	}
	a := chanmix.NewAnimator(runner.Data(), cfg)
	a.SetLogger(logger)
	a.SetEventSink(logSink{logger})

	dt := runner.FrameTime()
	pose := &chanmix.Pose{}
	runner.OnSnapshot = func(label string, frame int) {
		renderLayout(out, fmt.Sprintf("%s (frame %d, %.3fs)", label, frame, float32(frame)*dt), a.Layout())
	}

	for frame := 0; !runner.Done(); frame++ {
		if params.MaxFrames > 0 && frame >= params.MaxFrames {
			return fmt.Errorf("script still running after %d frames", params.MaxFrames)
		}
		runner.Step(a)
		if params.Every > 0 && frame%params.Every == 0 {
			renderLayout(out, fmt.Sprintf("frame %d (%.3fs)", frame, float32(frame)*dt), a.Layout())
		}
		a.Update(dt)
		pose.SetToSetupPose()
		a.Apply(pose)
	}
	_, err = fmt.Fprintf(out, "%d frames, %d layers in final pose\n", runner.Frame(), len(pose.Layers))
	return err
}

// logSink logs animator events at debug level.
type logSink struct {
	logger *slog.Logger
}

func (s logSink) EmitEvent(ev chanmix.Event) {
	s.logger.Debug("animator event",
		"type", ev.Type.String(), "channel", ev.Channel, "animation", ev.Animation, "blend", ev.BlendTime)
}
