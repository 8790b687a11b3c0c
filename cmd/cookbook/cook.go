package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/config"
	"github.com/hammamikhairi/cookbook/internal/conversation"
	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/engine"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/notify"
	"github.com/hammamikhairi/cookbook/internal/sound"
	"github.com/hammamikhairi/cookbook/internal/timer"
)

func newCookCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cook [recipe]",
		Short: "Cook a recipe step by step",
		Long:  "Cook a recipe step by step. Without an argument, pick one from a list.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive(os.Stdin) || !isInteractive(os.Stdout) {
				return errors.New("cook needs an interactive terminal")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger()

			src, err := ctx.recipes()
			if err != nil {
				return err
			}

			var ref string
			if len(args) == 1 {
				ref = args[0]
			} else if ref, err = pickRecipe(cmd.Context(), src); err != nil {
				return err
			}
			r, err := resolveRecipe(cmd.Context(), src, ref)
			if err != nil {
				return err
			}

			history, persistent, closeHistory := ctx.cookRecorder(cmd.Context())
			defer closeHistory()
			if !persistent {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: history database unavailable, this session will not be saved")
			}

			return runCook(cmd.Context(), cfg, log, r, history)
		},
	}
}

// runCook opens the cooking page for one recipe and blocks until the user
// quits. Progress lives only as long as the page.
func runCook(parent context.Context, cfg *config.Config, log *logger.Logger, r *domain.Recipe, history domain.HistoryRecorder) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	app := newCLIApp(conversation.NewKeywordParser(log), log)
	ui := display.NewUI(app)
	app.ui = ui

	var alert domain.Notifier = notify.NewCLINotifier(log, ui)
	if cfg.Notifications.Chime || cfg.SpeechEnabled() {
		player, err := sound.NewPlayer(log)
		if err != nil {
			log.Warn("audio unavailable, chime and speech disabled: %v", err)
		} else {
			defer player.Stop()
			if cfg.Notifications.Chime {
				alert = notify.NewChimingNotifier(alert, sound.NewChime(player, log), log)
			}
			if cfg.SpeechEnabled() {
				tts := sound.NewTTS(cfg.Notifications.SpeechKey, cfg.Notifications.SpeechRegion, log,
					sound.WithVoice(cfg.Notifications.SpeechVoice),
					sound.WithHTTPTimeout(cfg.RequestTimeout()),
				)
				alert = notify.NewSpeakingNotifier(alert, sound.NewAnnouncer(tts, player, log), log)
				log.Info("spoken announcements enabled (voice=%s, region=%s)", tts.Voice(), cfg.Notifications.SpeechRegion)
			}
		}
	}
	notifier := notify.NewFanout(log, alert,
		notify.NewNtfy(cfg.Notifications.NtfyTopic, cfg.RequestTimeout(), log))

	app.countdown = timer.New(notifier, log,
		timer.WithOnTick(func(timer.Snapshot) { ui.Refresh() }))

	session, err := engine.New(r, log,
		engine.WithRecorder(history),
		engine.WithObserver(app),
		engine.WithTickInterval(cfg.TickInterval()),
	)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.ID, err)
	}
	app.session = session
	defer app.shutdown()

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
