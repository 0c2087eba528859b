package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/longkey1/mentorchat/internal/clipboard"
	"github.com/longkey1/mentorchat/internal/mentor/config"
	"github.com/longkey1/mentorchat/internal/mentor/conversation"
	"github.com/longkey1/mentorchat/internal/mentor/reply"
	"github.com/longkey1/mentorchat/internal/mentor/session"
	"github.com/longkey1/mentorchat/internal/mentor/variant"
	"github.com/longkey1/mentorchat/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	variantName string
	argFlags    []string
	replyDelay  time.Duration
	sessionID   string
	newSession  bool
	sessionName string
	noSave      bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the mentor",
	Long: `Chat with the mentor.

Without a message, opens the full-screen chat. Enter sends the message,
Alt+Enter inserts a newline, Ctrl+Y copies the latest reply and Esc quits.

With a message, sends it once and prints the reply. Use "-" to read the
message from stdin.

Variants are TOML files in the configured variant directories:
title = "Header title"
greeting = "Optional first message from the mentor"
reply = "Reply text with optional {{input}} and {{key}} placeholders"
reply_delay = "1s"  # Optional`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if sessionID != "" && newSession {
			return fmt.Errorf("cannot specify both --session and --new-session")
		}
		interactive := len(args) == 0

		// Saving: always for explicit sessions, by config for the full-screen chat
		save := !noSave && (sessionID != "" || newSession || (interactive && cfg.SaveSessions))

		var store session.Store
		if save || sessionID != "" {
			store, err = session.Open(cfg.SessionStore, cfg.SessionDir)
			if err != nil {
				return fmt.Errorf("opening session store: %w", err)
			}
			defer store.Close()
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var sess *session.Session
		name := cfg.Variant
		if sessionID != "" {
			sess, err = session.FindByPrefix(ctx, store, sessionID)
			if err != nil {
				return fmt.Errorf("finding session: %w", err)
			}
			if sess.Variant != "" {
				name = sess.Variant
			}
			logger.Debug("Continuing session", zap.String("session", sess.ID), zap.Int("messages", sess.MessageCount()))
		}
		if cmd.Flags().Changed("variant") {
			name = variantName
		}

		v, err := variant.Find(name, cfg.VariantDirs)
		if err != nil {
			return fmt.Errorf("loading variant: %w", err)
		}
		vars, err := variant.ParseVars(argFlags)
		if err != nil {
			return fmt.Errorf("parsing --var: %w", err)
		}
		render, err := v.Renderer(vars)
		if err != nil {
			return err
		}

		// Delay priority: flag > variant > config file > default
		configDelay, err := cfg.GetReplyDelay(reply.DefaultDelay)
		if err != nil {
			return err
		}
		delay := v.Delay(configDelay)
		if cmd.Flags().Changed("delay") {
			if replyDelay < 0 {
				return fmt.Errorf("--delay cannot be negative")
			}
			delay = replyDelay
		}

		if sess == nil {
			sess = session.NewSession(v.Name)
			sess.Name = sessionName
		}

		opts := conversation.Options{
			Greeting:  v.Greeting,
			History:   sess.Messages,
			Responder: reply.NewSimulated(delay, render),
			Logger:    logger,
		}
		if cb, err := clipboard.New(); err == nil {
			opts.Clipboard = cb
		} else {
			logger.Debug("Clipboard disabled", zap.Error(err))
		}
		ctrl := conversation.New(opts)
		defer ctrl.Close()

		var rec *session.Recorder
		if save {
			rec = session.NewRecorder(store, sess, logger)
			ctrl.Subscribe(rec.Observe)
		}

		if interactive {
			if err := runInteractive(ctrl, v, cfg.Theme); err != nil {
				return err
			}
		} else {
			message, err := readMessage(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			answer, err := sendOnce(ctx, ctrl, message)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
		}

		if rec != nil && rec.Session().MessageCount() > 0 {
			if err := rec.Err(); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Session: %s\n", sess.GetShortID())
		}
		return nil
	},
}

func runInteractive(ctrl *conversation.Controller, v *variant.Variant, theme string) error {
	m := tui.New(tui.Options{
		Controller: ctrl,
		Variant:    v,
		Theme:      theme,
		Logger:     logger,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running chat: %w", err)
	}
	return nil
}

// readMessage joins args into the message, reading stdin for "-".
func readMessage(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading from stdin: %w", err)
		}
		return string(input), nil
	}
	return strings.Join(args, " "), nil
}

// sendOnce submits message and waits for the reply.
func sendOnce(ctx context.Context, ctrl *conversation.Controller, message string) (string, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	done := make(chan conversation.State, 1)
	unsubscribe := ctrl.Subscribe(func(st conversation.State) {
		if st.Busy {
			return
		}
		select {
		case done <- st:
		default:
		}
	})
	defer unsubscribe()

	if !ctrl.Submit(message) {
		return "", errors.New("message is empty")
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case st := <-done:
		if st.Err != nil {
			return "", st.Err
		}
		return st.Messages[len(st.Messages)-1].Content, nil
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&variantName, "variant", "t", "", "variant name (default from config)")
	chatCmd.Flags().StringArrayVar(&argFlags, "var", []string{}, "Variant placeholder in format key:value (can be specified multiple times)")
	chatCmd.Flags().DurationVar(&replyDelay, "delay", reply.DefaultDelay, "reply delay (overrides variant and config)")
	chatCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Continue a session (ID prefix or \"latest\")")
	chatCmd.Flags().BoolVar(&newSession, "new-session", false, "Save the conversation as a new session")
	chatCmd.Flags().StringVar(&sessionName, "session-name", "", "Name for the new session")
	chatCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the conversation")
}
