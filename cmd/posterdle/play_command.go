package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"posterdle/internal/catalog"
	"posterdle/internal/effects"
	"posterdle/internal/game"
	"posterdle/internal/session"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var mediaFlag string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			if mediaFlag != "" {
				media := game.MediaKind(strings.ToLower(mediaFlag))
				if !media.Valid() {
					return fmt.Errorf("unknown media kind %q (use movie or tv)", mediaFlag)
				}
				if _, err := eng.session.SwitchMedia(cmd.Context(), media, true); err != nil {
					return err
				}
			}
			mode := game.ModeDaily
			if modeFlag != "" {
				mode = game.Mode(strings.ToLower(modeFlag))
				if !mode.Valid() {
					return fmt.Errorf("unknown mode %q", modeFlag)
				}
			}
			if _, err := eng.session.SwitchMode(cmd.Context(), mode, true); err != nil {
				return err
			}
			if eng.session.Snapshot().Status == game.StatusLoading {
				if err := eng.session.LoadPuzzle(cmd.Context()); err != nil {
					return err
				}
			}

			return runPlayLoop(cmd, eng)
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Game mode: daily, daily-hard, infinite, infinite-hard")
	cmd.Flags().StringVar(&mediaFlag, "media", "", "Media kind: movie or tv")
	return cmd
}

// playLoop holds the interactive state around one session.
type playLoop struct {
	eng         *engine
	out         io.Writer
	in          *bufio.Scanner
	colorize    bool
	suggester   *session.Suggester
	suggestCh   chan []catalog.Item
	suggestions []catalog.Item
}

func runPlayLoop(cmd *cobra.Command, eng *engine) error {
	loop := &playLoop{
		eng:       eng,
		out:       cmd.OutOrStdout(),
		in:        bufio.NewScanner(cmd.InOrStdin()),
		colorize:  shouldColorize(cmd.OutOrStdout()),
		suggestCh: make(chan []catalog.Item, 1),
	}
	loop.suggester = session.NewSuggester(eng.client, eng.session.Snapshot().Media, func(items []catalog.Item) {
		select {
		case loop.suggestCh <- items:
		default:
		}
	}, eng.logger)
	defer loop.suggester.Stop()

	fmt.Fprintln(loop.out, "Devinez le film ou la série à partir de son affiche !")
	fmt.Fprintln(loop.out, "Entrée vide pour passer, /aide pour la liste des commandes.")

	for {
		loop.renderSnapshot()
		fmt.Fprint(loop.out, "> ")
		if !loop.in.Scan() {
			return loop.in.Err()
		}
		line := strings.TrimSpace(loop.in.Text())

		quit, err := loop.handle(cmd.Context(), line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (l *playLoop) handle(ctx context.Context, line string) (quit bool, err error) {
	if strings.HasPrefix(line, "/") {
		return l.handleCommand(ctx, line)
	}
	if strings.HasPrefix(line, "=") {
		return false, l.guessFromSuggestion(ctx, line)
	}
	return false, l.submit(ctx, line, nil)
}

func (l *playLoop) handleCommand(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	command := fields[0]
	arg := strings.TrimSpace(strings.TrimPrefix(line, command))

	switch command {
	case "/quit", "/q":
		return true, nil
	case "/aide", "/help":
		l.printHelp()
		return false, nil
	case "/abandon":
		return false, l.giveUp(ctx)
	case "/suite", "/next":
		return false, l.nextPuzzle(ctx)
	case "/mode":
		return false, l.switchMode(ctx, arg)
	case "/media":
		return false, l.switchMedia(ctx, arg)
	case "/s":
		return false, l.suggest(arg)
	default:
		fmt.Fprintf(l.out, "Commande inconnue : %s (/aide pour la liste)\n", command)
		return false, nil
	}
}

func (l *playLoop) printHelp() {
	fmt.Fprintln(l.out, "Commandes :")
	fmt.Fprintln(l.out, "  <texte>          proposer une réponse (année optionnelle)")
	fmt.Fprintln(l.out, "  (entrée vide)    passer cet essai")
	fmt.Fprintln(l.out, "  /s <texte>       chercher des suggestions")
	fmt.Fprintln(l.out, "  =N               répondre avec la suggestion numéro N")
	fmt.Fprintln(l.out, "  /abandon         abandonner l'affiche en cours")
	fmt.Fprintln(l.out, "  /suite           affiche suivante (modes infinis)")
	fmt.Fprintln(l.out, "  /mode <nom>      daily, daily-hard, infinite, infinite-hard")
	fmt.Fprintln(l.out, "  /media <genre>   movie ou tv")
	fmt.Fprintln(l.out, "  /quit            quitter")
}

func (l *playLoop) submit(ctx context.Context, raw string, selected *catalog.Item) error {
	err := l.eng.session.SubmitGuess(ctx, raw, selected)
	if errors.Is(err, session.ErrNotPlaying) {
		fmt.Fprintln(l.out, "Aucune partie en cours. /suite pour continuer ou /quit pour quitter.")
		return nil
	}
	if err != nil {
		return err
	}
	l.suggestions = nil
	l.reportResolution()
	return nil
}

func (l *playLoop) guessFromSuggestion(ctx context.Context, line string) error {
	index, err := strconv.Atoi(strings.TrimPrefix(line, "="))
	if err != nil || index < 1 || index > len(l.suggestions) {
		fmt.Fprintln(l.out, "Numéro de suggestion invalide.")
		return nil
	}
	selected := l.suggestions[index-1]
	return l.submit(ctx, selected.Title, &selected)
}

func (l *playLoop) suggest(query string) error {
	l.suggester.Update(query)
	select {
	case items := <-l.suggestCh:
		l.suggestions = items
	case <-time.After(3 * time.Second):
		fmt.Fprintln(l.out, "Pas de réponse du catalogue, réessayez.")
		return nil
	}
	if len(l.suggestions) == 0 {
		fmt.Fprintln(l.out, "Aucune suggestion.")
		return nil
	}
	for i, item := range l.suggestions {
		year := item.Year()
		if year == "" {
			year = "?"
		}
		fmt.Fprintf(l.out, "  =%d  %s (%s)\n", i+1, item.Title, year)
	}
	return nil
}

func (l *playLoop) giveUp(ctx context.Context) error {
	if err := l.eng.session.RequestGiveUp(); err != nil {
		fmt.Fprintln(l.out, "Aucune partie en cours.")
		return nil
	}
	if !l.confirm("Abandonner cette affiche ?") {
		l.eng.session.CancelGiveUp()
		return nil
	}
	if err := l.eng.session.ConfirmGiveUp(ctx); err != nil {
		return err
	}
	l.reportResolution()
	return nil
}

func (l *playLoop) nextPuzzle(ctx context.Context) error {
	if err := l.eng.session.NextPuzzle(ctx); err != nil {
		fmt.Fprintf(l.out, "%s\n", err)
		return nil
	}
	l.reportResolution()
	return nil
}

func (l *playLoop) switchMode(ctx context.Context, arg string) error {
	mode := game.Mode(strings.ToLower(arg))
	if !mode.Valid() {
		fmt.Fprintf(l.out, "Mode inconnu : %q\n", arg)
		return nil
	}
	needsConfirm, err := l.eng.session.SwitchMode(ctx, mode, false)
	if err != nil {
		return err
	}
	if needsConfirm {
		if !l.confirm("Quitter la partie en cours remet la série à zéro. Continuer ?") {
			return nil
		}
		if _, err := l.eng.session.SwitchMode(ctx, mode, true); err != nil {
			return err
		}
	}
	l.reportResolution()
	return nil
}

func (l *playLoop) switchMedia(ctx context.Context, arg string) error {
	media := game.MediaKind(strings.ToLower(arg))
	if !media.Valid() {
		fmt.Fprintf(l.out, "Genre inconnu : %q (movie ou tv)\n", arg)
		return nil
	}
	needsConfirm, err := l.eng.session.SwitchMedia(ctx, media, false)
	if err != nil {
		return err
	}
	if needsConfirm {
		if !l.confirm("Quitter la partie en cours remet la série à zéro. Continuer ?") {
			return nil
		}
		if _, err := l.eng.session.SwitchMedia(ctx, media, true); err != nil {
			return err
		}
	}
	l.suggester.SetMedia(media)
	l.suggestions = nil
	l.reportResolution()
	return nil
}

func (l *playLoop) confirm(question string) bool {
	fmt.Fprintf(l.out, "%s (o/N) ", question)
	if !l.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(l.in.Text()))
	return answer == "o" || answer == "oui"
}

func (l *playLoop) renderSnapshot() {
	snap := l.eng.session.Snapshot()
	if snap.Status != game.StatusPlaying {
		return
	}

	fmt.Fprintf(l.out, "\n[%s · %s] Essai %d/%d, affiche masquée à %d %%\n",
		modeLabel(snap.Mode), mediaLabel(snap.Media),
		snap.Step+1, game.MaxAttempts(), snap.RevealPercent)
	if len(snap.StripEffects) > 0 {
		labels := make([]string, len(snap.StripEffects))
		for i, effect := range snap.StripEffects {
			labels[i] = effectLabel(effect)
		}
		fmt.Fprintf(l.out, "Bandes visibles : %d (%s)\n", snap.StripCount, strings.Join(labels, ", "))
	} else {
		fmt.Fprintf(l.out, "Bandes visibles : %d\n", snap.StripCount)
	}
	for i, wrong := range snap.WrongGuesses {
		label := wrong.Label
		if wrong.Year != "" {
			label = fmt.Sprintf("%s (%s)", label, wrong.Year)
		}
		fmt.Fprintf(l.out, "  %d. %s\n", i+1, label)
	}
	if snap.Mode.IsInfinite() && snap.Streak.Current > 0 {
		fmt.Fprintf(l.out, "Série en cours : %d\n", snap.Streak.Current)
	}
}

// reportResolution prints the outcome banner once a puzzle resolves.
func (l *playLoop) reportResolution() {
	snap := l.eng.session.Snapshot()
	if !snap.Status.Resolved() || snap.Puzzle == nil {
		return
	}

	title := snap.Puzzle.Title
	if year := snap.Puzzle.Year(); year != "" {
		title = fmt.Sprintf("%s (%s)", title, year)
	}

	if snap.Status == game.StatusWon {
		fmt.Fprintln(l.out, colorizeText("Bravo ! C'était : "+title, ansiGreen, l.colorize))
	} else {
		fmt.Fprintln(l.out, colorizeText("Perdu ! C'était : "+title, ansiRed, l.colorize))
	}
	if snap.ReferenceID != "" {
		fmt.Fprintf(l.out, "Fiche IMDb : https://www.imdb.com/title/%s/\n", snap.ReferenceID)
	}

	if snap.Mode.IsInfinite() {
		fmt.Fprintf(l.out, "Série : %d (record du jour %d, record absolu %d)\n",
			snap.Streak.Current, snap.Streak.TodayBest, snap.Streak.AllTimeBest)
		fmt.Fprintln(l.out, "/suite pour l'affiche suivante.")
	} else {
		fmt.Fprintln(l.out, "Revenez demain pour une nouvelle affiche !")
	}
}

func modeLabel(mode game.Mode) string {
	switch mode {
	case game.ModeDaily:
		return "quotidien"
	case game.ModeDailyHard:
		return "quotidien difficile"
	case game.ModeInfinite:
		return "infini"
	case game.ModeInfiniteHard:
		return "infini difficile"
	default:
		return string(mode)
	}
}

func mediaLabel(media game.MediaKind) string {
	if media == game.MediaTV {
		return "séries"
	}
	return "films"
}

func effectLabel(effect effects.Effect) string {
	switch effect {
	case effects.Flip:
		return "retournée"
	case effects.Desaturate:
		return "désaturée"
	case effects.Obscure:
		return "obscurcie"
	default:
		return "normale"
	}
}
