package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textdigest/internal/llm"
	"textdigest/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Chat with a persistent named session",
	Long: `Send a message within a named session whose history is stored in
SQLite, so the conversation continues across invocations.

Examples:
  textdigest chat "what did we discuss?"
  textdigest chat --session work --system "answer tersely" "first message"
  textdigest chat --session work --reset
  textdigest chat --list`,
	RunE: runChat,
}

var (
	chatInput   inputFlags
	chatSession string
	chatSystem  string
	chatReset   bool
	chatDelete  bool
	chatList    bool
)

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().BoolVar(&chatInput.fromClipboard, "clipboard", false, "Read the message from the clipboard")
	chatCmd.Flags().StringVar(&chatInput.filePath, "file", "", "Read the message from a file")
	chatCmd.Flags().StringVar(&chatSession, "session", "default", "Session name")
	chatCmd.Flags().StringVar(&chatSystem, "system", "", "System prompt for a new session")
	chatCmd.Flags().BoolVar(&chatReset, "reset", false, "Clear the session history")
	chatCmd.Flags().BoolVar(&chatDelete, "delete", false, "Delete the session entirely")
	chatCmd.Flags().BoolVar(&chatList, "list", false, "List stored sessions")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := store.New(ctx, cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.ErrorContext(ctx, "Failed to close session store",
				"error", closeErr,
				"dbPath", cfg.DBPath)
		}
	}()

	if chatList {
		sessions, listErr := db.ListSessions(ctx)
		if listErr != nil {
			return listErr
		}

		for _, sess := range sessions {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n",
				sess.Name,
				sess.CreatedAt.Format("2006-01-02 15:04"))
		}

		return nil
	}

	if chatDelete {
		if err = db.DeleteSession(ctx, chatSession); err != nil {
			return err
		}

		log.InfoContext(ctx, "Session is deleted", "session", chatSession)

		return nil
	}

	sess, err := db.GetOrCreateSession(ctx, chatSession, chatSystem)
	if err != nil {
		return err
	}

	if chatReset {
		if err = db.ResetSession(ctx, sess.ID); err != nil {
			return err
		}

		log.InfoContext(ctx, "Session is reset", "session", chatSession)

		return nil
	}

	message, err := resolveInput(ctx, chatInput, args)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	history, err := db.GetMessages(ctx, sess.ID)
	if err != nil {
		return err
	}

	var messages []llm.Message
	if sess.SystemPrompt != "" {
		messages = append(messages, llm.System(sess.SystemPrompt))
	}
	messages = append(messages, history...)
	messages = append(messages, llm.User(message))

	reply, err := client.Send(ctx, messages, cfg.Model, cfg.Temperature)
	if err != nil {
		return err
	}

	appendErrs := errors.Join(
		db.AppendMessage(ctx, sess.ID, llm.User(message)),
		db.AppendMessage(ctx, sess.ID, llm.Assistant(reply)),
	)
	if appendErrs != nil {
		return fmt.Errorf("persist exchange: %w", appendErrs)
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)

	return nil
}
