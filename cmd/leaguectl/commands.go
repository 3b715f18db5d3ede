package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/Dosada05/friends-league/brackets"
	"github.com/Dosada05/friends-league/db"
	"github.com/Dosada05/friends-league/middleware"
	"github.com/Dosada05/friends-league/models"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var driver, dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the tournaments and matches schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}
			if dsn == "" {
				return fmt.Errorf("--dsn or DATABASE_URL is required")
			}

			conn, err := db.Connect(driver, dsn, 5*time.Second)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := db.Migrate(ctx, conn, driver); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", driver)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", db.DriverPostgres, "database driver: postgres or sqlite")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string (defaults to DATABASE_URL)")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	var (
		format string
		teams  []string
		legs   int
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the generated schedule as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := brackets.GenerateParams{
				TournamentID: "preview",
				Teams:        trimAll(teams),
				Format:       models.TournamentFormat(format),
				Legs:         legs,
			}
			if seed != 0 {
				params.Rand = rand.New(rand.NewPCG(seed, seed))
			}
			matches, err := brackets.Generate(params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), matches)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(models.FormatLeague), "league or knockout8")
	cmd.Flags().StringSliceVar(&teams, "teams", nil, "comma separated team names")
	cmd.Flags().IntVar(&legs, "legs", 1, "legs per quarter- and semi-final pairing (knockout8 only)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "fixed seed for the knockout draw")
	_ = cmd.MarkFlagRequired("teams")
	return cmd
}

// standingsFile is the input of the standings command. Teams may be omitted,
// then every team that appears in a match is listed.
type standingsFile struct {
	Teams   []string       `json:"teams"`
	Matches []models.Match `json:"matches"`
}

func newStandingsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Compute a league table from a JSON match list",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var input standingsFile
			if err := json.NewDecoder(in).Decode(&input); err != nil {
				return fmt.Errorf("failed to decode match list: %w", err)
			}
			teams := input.Teams
			if len(teams) == 0 {
				teams = teamsFromMatches(input.Matches)
			}
			return printJSON(cmd.OutOrStdout(), brackets.ComputeStandings(input.Matches, teams))
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "path to a JSON file with teams and matches, - for stdin")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		secret string
		owner  string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET_KEY")
			}
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET_KEY is required")
			}
			token, err := middleware.IssueToken([]byte(secret), owner, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 signing key (defaults to JWT_SECRET_KEY)")
	cmd.Flags().StringVar(&owner, "owner", "", "owner identity placed in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func teamsFromMatches(matches []models.Match) []string {
	seen := make(map[string]struct{})
	var teams []string
	for _, m := range matches {
		for _, team := range []string{m.HomeTeam, m.AwayTeam} {
			if team == "" {
				continue
			}
			if _, ok := seen[team]; !ok {
				seen[team] = struct{}{}
				teams = append(teams, team)
			}
		}
	}
	return teams
}
