package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"podscribe/internal/pipeline"
	"podscribe/internal/transcript"
	"podscribe/internal/whisper"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var modelFlag string
	var outputFlag string
	var formatFlag string
	var languageFlag string
	var keepAudio bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "transcribe <audio-url-or-path>",
		Short: "Download an episode if needed and transcribe it locally",
		Long: `Transcribe one episode to a text, SRT, or JSON file.

The argument is either an HTTP(S) URL to episode audio (downloaded to the
staging directory and removed afterwards) or a path to a local audio file.
Model weights are fetched into the cache on first use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			tierValue := strings.TrimSpace(modelFlag)
			if tierValue == "" {
				tierValue = cfg.Whisper.Model
			}
			tier, err := whisper.ParseTier(tierValue)
			if err != nil {
				return err
			}

			formatValue := strings.TrimSpace(formatFlag)
			if formatValue == "" {
				formatValue = cfg.Output.Format
			}
			format, err := transcript.ParseFormat(formatValue)
			if err != nil {
				return err
			}

			if lang := strings.TrimSpace(languageFlag); lang != "" {
				cfg.Whisper.Language = lang
			}

			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			p := pipeline.New(cfg, store, ctx.ensureLogger())
			outcome, err := p.Run(cmd.Context(), pipeline.Request{
				Reference:  args[0],
				Tier:       tier,
				OutputPath: strings.TrimSpace(outputFlag),
				Format:     format,
				KeepAudio:  keepAudio,
				Quiet:      quiet,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transcript written to %s\n", outcome.TranscriptPath)
			fmt.Fprintf(out, "Language %s, %d segments, %s of audio, finished in %s\n",
				outcome.Result.Language,
				len(outcome.Result.Segments),
				outcome.Result.Duration().Round(time.Second),
				outcome.Elapsed.Round(100*time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model tier (tiny, base, small, medium, large)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Transcript file path (defaults under the output directory)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Transcript format (text, srt, json)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language hint passed to the model")
	cmd.Flags().BoolVar(&keepAudio, "keep-audio", false, "Keep downloaded audio in the staging directory")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the download progress bar")
	return cmd
}
