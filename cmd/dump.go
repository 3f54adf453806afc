package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bugVanisher/native32/internal/bytecode"
	"github.com/bugVanisher/native32/internal/container"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <container> <outdir>",
	Short: "Decode a container's directory, images and sounds to outdir",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dumpContainer(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

// manifest is the top-level JSON description written to manifest.json,
// summarizing the header and the frame, movie, image and action counts.
type manifest struct {
	Colorspace string `json:"colorspace"`
	Generator  string `json:"generator"`
	Width      uint16 `json:"width"`
	Height     uint16 `json:"height"`
	Frames     int    `json:"frame_count"`
	Movies     int    `json:"movie_count"`
	Images     int    `json:"image_count"`
	Actions    int    `json:"action_count"`
}

func dumpContainer(path, outDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	reader, err := container.Open(data)
	if err != nil {
		return errors.Wrapf(err, "opening container %s", path)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", outDir)
	}

	width, height := reader.Resolution()
	m := manifest{
		Colorspace: reader.Colorspace.String(),
		Generator:  reader.Generator,
		Width:      width,
		Height:     height,
	}

	const maxRecords = 4096

	for i := 1; i <= maxRecords; i++ {
		objects, err := reader.Frame(i)
		if err != nil || len(objects) == 0 {
			break
		}
		m.Frames = i
	}
	for i := 1; i <= maxRecords; i++ {
		frames, err := reader.Movie(i)
		if err != nil || len(frames) == 0 {
			break
		}
		m.Movies = i
	}

	imgDir := filepath.Join(outDir, "images")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", imgDir)
	}
	for i := 1; i <= maxRecords; i++ {
		img, err := reader.Image(i)
		if err != nil {
			break
		}
		m.Images = i
		if img == nil {
			continue
		}
		name := filepath.Join(imgDir, fmt.Sprintf("%04d_%dx%d.rgba", i, img.Width, img.Height))
		if err := os.WriteFile(name, img.Pixels, 0o644); err != nil {
			log.Error().Err(err).Int("image", i).Msg("failed to write decoded image")
		}
	}

	sndDir := filepath.Join(outDir, "sounds")
	if err := os.MkdirAll(sndDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", sndDir)
	}
	for i := 1; i <= maxRecords; i++ {
		snd, err := reader.Sound(i)
		if err != nil {
			break
		}
		ext := ".raw"
		if snd.Format == container.AudioMP3 {
			ext = ".mp3"
		}
		name := filepath.Join(sndDir, fmt.Sprintf("%04d%s", i, ext))
		if err := os.WriteFile(name, snd.Payload, 0o644); err != nil {
			log.Error().Err(err).Int("sound", i).Msg("failed to write decoded sound")
		}
	}

	actionCount, err := dumpActions(reader, outDir)
	if err != nil {
		return errors.Wrap(err, "disassembling actions")
	}
	m.Actions = actionCount

	encoded, err := jsoniter.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling manifest")
	}
	if err := os.WriteFile(filepath.Join(outDir, "manifest.json"), encoded, 0o644); err != nil {
		return errors.Wrap(err, "writing manifest.json")
	}

	log.Info().Int("frames", m.Frames).Int("movies", m.Movies).Int("images", m.Images).
		Int("actions", m.Actions).Msg("dump complete")
	return nil
}

// dumpActions disassembles the container's entire action table and
// writes it as a flat, human-readable instruction listing to
// actions.txt, mirroring the original tool's disassemble_actions /
// save_actions step.
func dumpActions(reader *container.Reader, outDir string) (int, error) {
	instructions, err := bytecode.NewDisassembler(reader).All()
	if err != nil {
		return 0, err
	}

	f, err := os.Create(filepath.Join(outDir, "actions.txt"))
	if err != nil {
		return 0, errors.Wrapf(err, "creating actions.txt")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, instr := range instructions {
		switch instr.Payload.Kind {
		case bytecode.PayloadInt:
			fmt.Fprintf(w, "%04d  %-16s %d\n", i+1, instr.Op, instr.Payload.Int)
		case bytecode.PayloadStr:
			fmt.Fprintf(w, "%04d  %-16s %q\n", i+1, instr.Op, instr.Payload.Str)
		default:
			fmt.Fprintf(w, "%04d  %s\n", i+1, instr.Op)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, errors.Wrapf(err, "writing actions.txt")
	}
	return len(instructions), nil
}
