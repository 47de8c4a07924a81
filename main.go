package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nigelgutzmann/video-converter/internal/config"
	"github.com/nigelgutzmann/video-converter/internal/ffmpeg"
	"github.com/nigelgutzmann/video-converter/internal/profile"
	"github.com/nigelgutzmann/video-converter/pkg/converter"
)

var (
	rootCmd = &cobra.Command{
		Use:   "video-converter",
		Short: "A declarative front end for ffmpeg conversions",
		Long: `video-converter translates a declarative description of a desired
conversion (container, audio/video/subtitle codecs and their parameters)
into a validated ffmpeg invocation and reports progress while it runs.

Examples:
  # Convert using a named profile
  video-converter convert -i input.mov -o output.mp4 -p instagram-reel

  # Convert using a request file
  video-converter convert -i input.mov -o output.webm --request request.yaml

  # Two-pass encode
  video-converter convert -i input.mov -o output.mp4 -p reddit --two-pass`,
	}

	convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "Convert a media file",
		Long: fmt.Sprintf(`Convert a media file according to a profile or a YAML request file.

Supported profiles:
%s`, formatSupportedProfiles()),
		RunE: runConvert,
	}

	probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Inspect the streams of a media file",
		RunE:  runProbe,
	}

	thumbnailCmd = &cobra.Command{
		Use:   "thumbnail",
		Short: "Extract a single frame as an image",
		RunE:  runThumbnail,
	}

	codecsCmd = &cobra.Command{
		Use:   "codecs",
		Short: "List supported formats, codecs and profiles",
		RunE:  runCodecs,
	}
)

func formatSupportedProfiles() string {
	var sb strings.Builder
	for _, name := range profile.Names() {
		p, _ := profile.Get(name)
		sb.WriteString(fmt.Sprintf("- %s: %s\n", name, p.Description()))
	}
	return sb.String()
}

func setup() (*config.Config, hclog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "video-converter",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})
	return cfg, logger, nil
}

func loadRequest(cmd *cobra.Command) (*converter.Request, error) {
	requestPath, _ := cmd.Flags().GetString("request")
	profileName, _ := cmd.Flags().GetString("profile")

	var req *converter.Request
	switch {
	case requestPath != "":
		data, err := os.ReadFile(requestPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read request file: %v", err)
		}
		req = &converter.Request{}
		if err := yaml.Unmarshal(data, req); err != nil {
			return nil, fmt.Errorf("cannot parse request file: %v", err)
		}
	case profileName != "":
		p, err := profile.Get(profileName)
		if err != nil {
			return nil, err
		}
		req = p.Request()
	default:
		return nil, fmt.Errorf("either --request or --profile is required")
	}

	if f, _ := cmd.Flags().GetString("format"); f != "" {
		req.Format = f
	}
	return req, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	twoPass, _ := cmd.Flags().GetBool("two-pass")

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	conv := converter.New(
		ffmpeg.NewRunner(cfg.FFmpegPath, logger),
		ffmpeg.NewProber(logger),
		logger,
	)
	req, err := loadRequest(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prog, err := conv.Convert(ctx, inputPath, outputPath, req, converter.ConvertOptions{
		TwoPass: twoPass,
		Timeout: cfg.ProgressTimeout,
		Nice:    cfg.Nice,
	})
	if err != nil {
		return err
	}

	for pct := range prog.C() {
		fmt.Printf("\rconverting... %3d%%", pct)
	}
	fmt.Println()
	if err := prog.Err(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outputPath)
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")

	_, logger, err := setup()
	if err != nil {
		return err
	}
	info, err := ffmpeg.NewProber(logger).Probe(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("duration: %.2fs\n", info.Format.Duration)
	if info.Video != nil {
		fmt.Printf("video: %s %dx%d", info.Video.Codec, info.Video.Width, info.Video.Height)
		if info.Video.Rotate != 0 {
			fmt.Printf(" rotate=%d", info.Video.Rotate)
		}
		fmt.Println()
	}
	if info.Audio != nil {
		fmt.Printf("audio: %s %dch %dHz\n", info.Audio.Codec, info.Audio.Channels, info.Audio.SampleRate)
	}
	return nil
}

func runThumbnail(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	at, _ := cmd.Flags().GetFloat64("time")
	size, _ := cmd.Flags().GetString("size")

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	runner := ffmpeg.NewRunner(cfg.FFmpegPath, logger)
	return runner.Thumbnail(cmd.Context(), inputPath, at, outputPath, size)
}

func runCodecs(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	conv := converter.New(
		ffmpeg.NewRunner(cfg.FFmpegPath, logger),
		ffmpeg.NewProber(logger),
		logger,
	)
	fmt.Printf("formats:   %s\n", strings.Join(conv.Formats(), ", "))
	fmt.Printf("audio:     %s\n", strings.Join(conv.AudioCodecs(), ", "))
	fmt.Printf("video:     %s\n", strings.Join(conv.VideoCodecs(), ", "))
	fmt.Printf("subtitles: %s\n", strings.Join(conv.SubtitleCodecs(), ", "))
	fmt.Printf("profiles:  %s\n", strings.Join(profile.Names(), ", "))
	return nil
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "Input media file or URL")
	convertCmd.Flags().StringP("output", "o", "", "Output media file")
	convertCmd.Flags().StringP("profile", "p", "",
		fmt.Sprintf("Conversion profile (%s)", strings.Join(profile.Names(), ", ")))
	convertCmd.Flags().String("request", "", "YAML request file")
	convertCmd.Flags().String("format", "", "Override the container format")
	convertCmd.Flags().Bool("two-pass", false, "Run a two-pass encode")

	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")

	probeCmd.Flags().StringP("input", "i", "", "Input media file or URL")
	probeCmd.MarkFlagRequired("input")

	thumbnailCmd.Flags().StringP("input", "i", "", "Input media file")
	thumbnailCmd.Flags().StringP("output", "o", "", "Output image file")
	thumbnailCmd.Flags().Float64P("time", "t", 0, "Offset in seconds")
	thumbnailCmd.Flags().String("size", "", "Thumbnail size as WxH")

	thumbnailCmd.MarkFlagRequired("input")
	thumbnailCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(thumbnailCmd)
	rootCmd.AddCommand(codecsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
