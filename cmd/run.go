package cmd

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bugVanisher/native32/internal/container"
	"github.com/bugVanisher/native32/internal/host"
	"github.com/bugVanisher/native32/internal/playback"
)

var runArgs struct {
	ticks   int
	saveDir string
}

var runCmd = &cobra.Command{
	Use:   "run <container>",
	Short: "Drive a container's playback scheduler headlessly for a fixed number of ticks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContainer(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&runArgs.ticks, "ticks", "t", 300, "number of 30Hz ticks to run")
	runCmd.Flags().StringVar(&runArgs.saveDir, "save-dir", "", "directory for companion save data (SSL_GetSSLData/SSL_SaveSSLData)")
}

func runContainer(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	reader, err := container.Open(data)
	if err != nil {
		return errors.Wrapf(err, "opening container %s", path)
	}

	width, height := reader.Resolution()
	log.Info().Str("colorspace", reader.Colorspace.String()).Uint16("width", width).Uint16("height", height).Msg("container loaded")

	h := host.NewNoop(runArgs.saveDir)
	sched := playback.New(reader, h, 8)

	for i := 0; i < runArgs.ticks; i++ {
		if err := sched.Tick(ctx); err != nil {
			return errors.Wrapf(err, "tick %d", i)
		}
		if target, ok := sched.ReloadRequested(); ok {
			log.Info().Str("target", target).Msg("container requested a reload, stopping run")
			h.Navigate(target)
			break
		}
	}
	log.Info().Int("ticks", runArgs.ticks).Dur("wall", time.Duration(runArgs.ticks)*playback.TickMS*time.Millisecond).Msg("run complete")
	return nil
}
