// Package main provides the CLI entry point for vidmask.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidmask/pkg/adapters/consoleprogress"
	"github.com/user/vidmask/pkg/adapters/ffmpeg"
	"github.com/user/vidmask/pkg/adapters/ffprobe"
	"github.com/user/vidmask/pkg/adapters/filesink"
	"github.com/user/vidmask/pkg/adapters/ggannotator"
	"github.com/user/vidmask/pkg/adapters/logger"
	"github.com/user/vidmask/pkg/adapters/mp4probe"
	"github.com/user/vidmask/pkg/adapters/osfilesystem"
	"github.com/user/vidmask/pkg/adapters/smartprober"
	"github.com/user/vidmask/pkg/adapters/vidiodecoder"
	"github.com/user/vidmask/pkg/adapters/vidioencoder"
	"github.com/user/vidmask/pkg/batch"
	"github.com/user/vidmask/pkg/config"
	"github.com/user/vidmask/pkg/orchestrator"
	"github.com/user/vidmask/pkg/pipeline"
	"github.com/user/vidmask/pkg/ports"
	"github.com/user/vidmask/pkg/stages/mask"
	"github.com/user/vidmask/pkg/stages/remux"
	"github.com/user/vidmask/pkg/stages/trim"
	"github.com/user/vidmask/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "vidmask",
		Usage:                l10n.T("Batch mask yellow regions in videos or trim their openings"),
		Version:              version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "mask",
				Usage:     l10n.T("Paint yellow regions of every video in a folder white"),
				ArgsUsage: "[INPUT_FOLDER [OUTPUT_FOLDER]]",
				Flags:     append(commonFlags(), maskFlags()...),
				Action: func(c *cli.Context) error {
					return run(c, batch.ModeMask)
				},
			},
			{
				Name:      "trim",
				Usage:     l10n.T("Drop the first seconds of every video in a folder"),
				ArgsUsage: "[INPUT_FOLDER [OUTPUT_FOLDER]]",
				Flags:     append(commonFlags(), trimFlags()...),
				Action: func(c *cli.Context) error {
					return run(c, batch.ModeTrim)
				},
			},
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("vidmask version %s", version))
					return nil
				},
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T("Input and Output")},
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: l10n.T("Folder containing the source videos"), Category: l10n.T("Input and Output")},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Folder receiving the processed videos"), Category: l10n.T("Input and Output")},
		&cli.StringFlag{Name: "report", Usage: l10n.T("Write a run summary to file (Markdown, or YAML for .yaml/.yml)"), Category: l10n.T("Input and Output")},
		&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg binary"), Category: l10n.T("Tools")},
		&cli.StringFlag{Name: "ffprobe", Usage: l10n.T("Path to the ffprobe binary"), Category: l10n.T("Tools")},
		&cli.StringFlag{Name: "video-codec", Usage: l10n.T("Output video codec"), Category: l10n.T("Video and Quality")},
		&cli.IntFlag{Name: "crf", Usage: l10n.T("Output CRF value (0-51, lower is better)"), Category: l10n.T("Video and Quality")},
		&cli.StringFlag{Name: "on-error", Usage: l10n.T("What to do when a video fails (abort, continue)"), Category: l10n.T("Batch")},
		&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: l10n.T("Number of videos processed at once"), Category: l10n.T("Batch")},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
	}
}

func maskFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "temp-dir", Usage: l10n.T("Directory for intermediate files (default: output folder)"), Category: l10n.T("Input and Output")},
		&cli.StringFlag{Name: "intermediate-encoder", Usage: l10n.T("Intermediate encoder (ffmpeg, vidio)"), Category: l10n.T("Video and Quality")},
		&cli.StringFlag{Name: "intermediate-codec", Usage: l10n.T("Intermediate video codec"), Category: l10n.T("Video and Quality")},
		&cli.BoolFlag{Name: "no-verify", Usage: l10n.T("Skip probing the output after masking"), Category: l10n.T("Video and Quality")},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: l10n.T("Debug")},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output"), Category: l10n.T("Debug")},
		&cli.IntFlag{Name: "debug-every", Usage: l10n.T("Also save every Nth frame with detections"), Category: l10n.T("Debug")},
	}
}

func trimFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{Name: "cut-start", Usage: l10n.T("Start of the cut in seconds (accepted but not applied)"), Category: l10n.T("Trim")},
		&cli.Float64Flag{Name: "cut-end", Usage: l10n.T("Seconds dropped from the start of each video"), Category: l10n.T("Trim")},
	}
}

// loadConfig builds the configuration: defaults, then the YAML file, then
// positional arguments and flags.
func loadConfig(c *cli.Context, mode batch.Mode) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.NArg() > 2 {
		return cfg, fmt.Errorf("%s", l10n.F("unexpected arguments %s: flags must precede INPUT_FOLDER OUTPUT_FOLDER", strings.Join(c.Args().Slice()[2:], " ")))
	}
	if c.NArg() > 0 {
		cfg.Input = c.Args().Get(0)
	}
	if c.NArg() > 1 {
		cfg.Output = c.Args().Get(1)
	}
	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("report") {
		cfg.Report = c.String("report")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("ffprobe") {
		cfg.FFprobePath = c.String("ffprobe")
	}
	if c.IsSet("on-error") {
		cfg.Batch.OnError = c.String("on-error")
	}
	if c.IsSet("jobs") {
		cfg.Batch.Jobs = c.Int("jobs")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.LogLevel = "quiet"
	}

	switch mode {
	case batch.ModeMask:
		if c.IsSet("video-codec") {
			cfg.Mask.VideoCodec = c.String("video-codec")
		}
		if c.IsSet("crf") {
			cfg.Mask.CRF = c.Int("crf")
		}
		if c.IsSet("temp-dir") {
			cfg.TempDir = c.String("temp-dir")
		}
		if c.IsSet("intermediate-encoder") {
			cfg.Mask.IntermediateEncoder = c.String("intermediate-encoder")
		}
		if c.IsSet("intermediate-codec") {
			cfg.Mask.IntermediateCodec = c.String("intermediate-codec")
		}
		if c.Bool("no-verify") {
			cfg.Mask.Verify = false
		}
		if c.IsSet("debug") {
			cfg.Debug = c.Bool("debug")
		}
		if c.IsSet("debug-dir") {
			cfg.DebugDir = c.String("debug-dir")
		}
		if c.IsSet("debug-every") {
			cfg.DebugEvery = c.Int("debug-every")
		}
	case batch.ModeTrim:
		if c.IsSet("video-codec") {
			cfg.Trim.VideoCodec = c.String("video-codec")
		}
		if c.IsSet("crf") {
			cfg.Trim.CRF = c.Int("crf")
		}
		if c.IsSet("cut-start") {
			cfg.Trim.CutStart = c.Float64("cut-start")
		}
		if c.IsSet("cut-end") {
			cfg.Trim.CutEnd = c.Float64("cut-end")
		}
	}

	if cfg.Input == "" || cfg.Output == "" {
		return cfg, fmt.Errorf("%s", l10n.T("Input and output folders are required"))
	}
	return cfg, cfg.Validate()
}

func run(c *cli.Context, mode batch.Mode) error {
	cfg, err := loadConfig(c, mode)
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	var progress ports.ProgressReporter
	level, err := ports.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if level == ports.LevelQuiet {
		log = logger.Discard
		progress = consoleprogress.NewWriter(io.Discard, false)
	} else {
		log = logger.NewConsole(level)
		progress = consoleprogress.New()
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	transcoder, err := ffmpeg.NewTranscoder(cfg.FFmpegPath, log)
	if err != nil {
		return err
	}
	prober, err := newProber(cfg, log)
	if err != nil {
		return err
	}

	var maskRunner batch.MaskRunner
	var trimRunner batch.TrimRunner
	switch mode {
	case batch.ModeMask:
		sink, err := newSink(cfg, fs)
		if err != nil {
			return err
		}
		maskRunner = &maskFactory{
			cfg:      cfg,
			decoder:  vidiodecoder.New(),
			progress: progress,
			sink:     sink,
			remux:    remux.NewStage(transcoder, fs, log),
			prober:   prober,
			fs:       fs,
			logger:   log,
		}
	case batch.ModeTrim:
		trimRunner = orchestrator.NewTrimJob(trim.NewStage(prober, transcoder, fs, log), log)
	}

	params := cfg.ToBatchParams(mode)
	log.Info("Processing %s -> %s (%s)", params.InputDir, params.OutputDir, mode)

	runner := batch.NewRunner(maskRunner, trimRunner, fs, log)
	report, runErr := runner.Run(ctx, params)

	if cfg.Report != "" {
		writeReport(cfg, mode, params, report, log)
	}

	if runErr != nil {
		return runErr
	}
	if report.Failed > 0 {
		return fmt.Errorf("%s", l10n.F("%d of %d videos failed", report.Failed, report.Total))
	}
	return nil
}

// newProber reads ISO-BMFF metadata in-process and falls back to ffprobe.
func newProber(cfg config.Config, log ports.Logger) (ports.Prober, error) {
	probe, err := ffprobe.New(cfg.FFprobePath)
	if err != nil {
		return nil, err
	}
	return smartprober.New(mp4probe.New(), probe, log), nil
}

func newSink(cfg config.Config, fs ports.FileSystem) (ports.DebugSink, error) {
	if !cfg.Debug {
		return filesink.Discard{}, nil
	}
	if err := fs.MkdirAll(cfg.DebugDir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(cfg.DebugDir, fs, ggannotator.New()), nil
}

// maskFactory builds a fresh mask stage per file, so parallel jobs never
// share an encoder.
type maskFactory struct {
	cfg      config.Config
	decoder  ports.VideoDecoder
	progress ports.ProgressReporter
	sink     ports.DebugSink
	remux    pipeline.Stage[pipeline.RemuxInput, pipeline.RemuxResult]
	prober   ports.Prober
	fs       ports.FileSystem
	logger   ports.Logger
}

func (f *maskFactory) Run(ctx context.Context, config orchestrator.MaskConfig) (orchestrator.MaskRunResult, error) {
	encoder, err := f.newEncoder()
	if err != nil {
		return orchestrator.MaskRunResult{InputPath: config.InputPath, OutputPath: config.OutputPath}, err
	}
	stage := mask.NewStage(f.decoder, encoder, f.progress, f.sink, f.logger)
	job := orchestrator.NewMaskJob(stage, f.remux, f.prober, f.fs, f.logger)
	return job.Run(ctx, config)
}

func (f *maskFactory) newEncoder() (ports.VideoEncoder, error) {
	if strings.EqualFold(f.cfg.Mask.IntermediateEncoder, "vidio") {
		return vidioencoder.New(), nil
	}
	return ffmpeg.NewEncoder(f.cfg.FFmpegPath)
}

func writeReport(cfg config.Config, mode batch.Mode, params batch.Params, report batch.Report, log ports.Logger) {
	settings := summarizer.Settings{
		OnError: string(params.OnError),
		Jobs:    params.Jobs,
	}
	switch mode {
	case batch.ModeMask:
		settings.VideoCodec = cfg.Mask.VideoCodec
		settings.AudioCodec = cfg.Mask.AudioCodec
		settings.CRF = cfg.Mask.CRF
		settings.IntermediateCodec = cfg.Mask.IntermediateCodec
	case batch.ModeTrim:
		settings.VideoCodec = cfg.Trim.VideoCodec
		settings.AudioCodec = cfg.Trim.AudioCodec
		settings.CRF = cfg.Trim.CRF
		settings.CutStart = params.Trim.CutStart
		settings.CutEnd = params.Trim.CutEnd
	}

	summary := summarizer.NewBuilder().
		WithReport(report).
		WithSettings(settings).
		Build()

	writer := summarizer.NewWriter(summarizer.FormatterFor(cfg.Report, l10n.T))
	if err := writer.Write(cfg.Report, summary); err != nil {
		log.Error("Failed to write summary: %s", err)
		return
	}
	log.Info("Summary saved to %s", cfg.Report)
}
