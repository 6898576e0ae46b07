package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"podscribe/internal/whisper"
)

func newModelsCommand(ctx *commandContext) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage cached model weights",
	}

	modelsCmd.AddCommand(newModelsListCommand(ctx))
	modelsCmd.AddCommand(newModelsFetchCommand(ctx))

	return modelsCmd
}

func newModelsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show available model tiers and cache state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := whisper.NewCache(cfg.Paths.ModelCacheDir, cfg.Whisper.DownloadBaseURL, nil, ctx.ensureLogger())

			tiers := whisper.Tiers()
			rows := make([][]string, 0, len(tiers))
			for i, tier := range tiers {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					string(tier),
					tier.WeightFile(),
					tier.ApproxSize(),
					yesNo(cache.Cached(tier)),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"#", "Tier", "Weights", "Size", "Cached"}, rows, 0, 3))
			fmt.Fprintf(out, "Cache directory: %s\n", cfg.Paths.ModelCacheDir)
			return nil
		},
	}
}

func newModelsFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <tier>",
		Short: "Download model weights into the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tier, err := whisper.ParseTier(args[0])
			if err != nil {
				return err
			}
			cache := whisper.NewCache(cfg.Paths.ModelCacheDir, cfg.Whisper.DownloadBaseURL, nil, ctx.ensureLogger())

			out := cmd.OutOrStdout()
			if cache.Cached(tier) {
				fmt.Fprintf(out, "%s already cached at %s\n", tier, cache.Path(tier))
				return nil
			}
			fmt.Fprintf(out, "Fetching %s weights (%s)...\n", tier, tier.ApproxSize())
			path, err := cache.Ensure(cmd.Context(), tier)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cached %s\n", path)
			return nil
		},
	}
}
