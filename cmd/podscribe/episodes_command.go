package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"podscribe/internal/feed"
	"podscribe/internal/podcastindex"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "episodes <feed-url-or-id>",
		Short: "List the downloadable episodes of a feed",
		Long: `List episodes with their audio enclosure URLs.

Accepts either an RSS/Atom feed URL (fetched and parsed directly) or a
numeric Podcast Index feed ID (resolved through the directory API).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			max := limit
			if max <= 0 {
				max = cfg.PodcastIndex.MaxEpisodes
			}
			out := cmd.OutOrStdout()

			if feedID, err := strconv.ParseInt(args[0], 10, 64); err == nil {
				client, err := podcastindex.NewClient(cfg)
				if err != nil {
					return err
				}
				episodes, err := client.EpisodesByFeed(cmd.Context(), feedID, max)
				if err != nil {
					return err
				}
				printDirectoryEpisodes(out, fmt.Sprintf("feed %d", feedID), episodes)
				return nil
			}

			episodes, err := feed.NewParser().Episodes(cmd.Context(), args[0], max)
			if err != nil {
				return err
			}
			if len(episodes) == 0 {
				fmt.Fprintln(out, "Feed has no episodes with audio enclosures")
				return nil
			}
			rows := make([][]string, 0, len(episodes))
			for i, ep := range episodes {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					truncate(ep.Title, 52),
					formatWhen(ep.Published),
					truncate(ep.Duration, 10),
					truncate(ep.EnclosureURL, 64),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Title", "Published", "Duration", "Audio URL"}, rows, 0))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of episodes to list")
	return cmd
}
