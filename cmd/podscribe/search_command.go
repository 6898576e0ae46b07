package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"podscribe/internal/config"
	"podscribe/internal/podcastindex"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var listEpisodes bool

	cmd := &cobra.Command{
		Use:   "search [term]...",
		Short: "Search the Podcast Index directory for shows",
		Long: `Search the Podcast Index directory.

With a term, prints the top matches. Without one, and when run from a
terminal, enters an interactive loop: search, pick a show, list its latest
episodes with their audio URLs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := podcastindex.NewClient(cfg)
			if err != nil {
				return err
			}

			term := strings.TrimSpace(strings.Join(args, " "))
			if term == "" {
				if !stdinIsTerminal() {
					return errors.New("a search term is required when stdin is not a terminal")
				}
				return searchLoop(cmd, client, cfg, limit)
			}
			return runSearch(cmd, client, cfg, term, limit, listEpisodes || stdinIsTerminal())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results to show")
	cmd.Flags().BoolVar(&listEpisodes, "episodes", false, "Prompt for a result and list its episodes even without a terminal")
	return cmd
}

// searchLoop keeps prompting for search terms until the user submits a blank
// line, mirroring a manual browse session.
func searchLoop(cmd *cobra.Command, client *podcastindex.Client, cfg *config.Config, limit int) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "Search term (blank to quit): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		term := strings.TrimSpace(scanner.Text())
		if term == "" {
			return nil
		}
		if err := runSearch(cmd, client, cfg, term, limit, true); err != nil {
			return err
		}
	}
}

func runSearch(cmd *cobra.Command, client *podcastindex.Client, cfg *config.Config, term string, limit int, interactive bool) error {
	results, err := client.SearchByTerm(cmd.Context(), term)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No podcasts matched %q\n", term)
		return nil
	}

	max := limit
	if max <= 0 {
		max = cfg.PodcastIndex.MaxResults
	}
	if max > 0 && len(results) > max {
		results = results[:max]
	}

	fmt.Fprintln(out, renderPodcastTable(results))

	if interactive {
		return episodePicker(cmd, client, results, cfg.PodcastIndex.MaxEpisodes)
	}
	return nil
}

func renderPodcastTable(results []podcastindex.Podcast) string {
	rows := make([][]string, 0, len(results))
	for i, show := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(show.Title, 48),
			truncate(show.Author, 28),
			strconv.FormatInt(show.ID, 10),
			truncate(show.FeedURL, 56),
		})
	}
	return renderTable([]string{"#", "Title", "Author", "Feed ID", "Feed URL"}, rows, 0, 3)
}

// episodePicker reads result numbers from stdin and lists episodes for each
// selection until the user submits a blank line.
func episodePicker(cmd *cobra.Command, client *podcastindex.Client, results []podcastindex.Podcast, maxEpisodes int) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "Show episodes for result # (blank to continue): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			return nil
		}
		index, err := strconv.Atoi(input)
		if err != nil || index < 1 || index > len(results) {
			fmt.Fprintf(out, "Enter a number between 1 and %d\n", len(results))
			continue
		}
		show := results[index-1]
		episodes, err := client.EpisodesByFeed(cmd.Context(), show.ID, maxEpisodes)
		if err != nil {
			return err
		}
		printDirectoryEpisodes(out, show.Title, episodes)
	}
}

func printDirectoryEpisodes(out io.Writer, title string, episodes []podcastindex.Episode) {
	if len(episodes) == 0 {
		fmt.Fprintf(out, "%s has no listed episodes\n", title)
		return
	}
	rows := make([][]string, 0, len(episodes))
	for i, ep := range episodes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(ep.Title, 52),
			formatWhen(ep.Published()),
			formatSeconds(ep.Duration),
			truncate(ep.EnclosureURL, 64),
		})
	}
	fmt.Fprintf(out, "Episodes of %s:\n", title)
	fmt.Fprintln(out, renderTable([]string{"#", "Title", "Published", "Duration", "Audio URL"}, rows, 0, 3))
}
