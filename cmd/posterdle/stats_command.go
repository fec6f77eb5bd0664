package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"posterdle/internal/game"
	"posterdle/internal/ledger"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show daily results and streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			store, led, err := ctx.openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			day := ledger.Day(time.Now())
			rows := make([]table.Row, 0, len(game.Modes)*2)
			for _, media := range []game.MediaKind{game.MediaMovie, game.MediaTV} {
				for _, mode := range game.Modes {
					rows = append(rows, statsRow(led, mode, media, day))
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Statistiques du %s\n", day)
			fmt.Fprintln(out, renderTable(
				table.Row{"Mode", "Média", "Aujourd'hui", "Série", "Record jour", "Record absolu"},
				rows, 4, 5, 6))
			return nil
		},
	}
}

func statsRow(led *ledger.Ledger, mode game.Mode, media game.MediaKind, day string) table.Row {
	if mode.IsDaily() {
		outcome, _ := led.DayOutcome(mode, media, day)
		return table.Row{modeLabel(mode), mediaLabel(media), outcomeLabel(outcome), "-", "-", "-"}
	}
	streak := led.Streak(mode, media)
	todayBest := streak.TodayBest
	if streak.TodayBestDay != day {
		todayBest = 0
	}
	return table.Row{
		modeLabel(mode), mediaLabel(media), "-",
		strconv.Itoa(streak.Current),
		strconv.Itoa(todayBest),
		strconv.Itoa(streak.AllTimeBest),
	}
}

func outcomeLabel(outcome ledger.Outcome) string {
	switch outcome {
	case ledger.OutcomeWon:
		return "gagné"
	case ledger.OutcomeLost:
		return "perdu"
	default:
		return "à jouer"
	}
}
