package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/jepco-digital/support-bot/internal/language"
	"github.com/jepco-digital/support-bot/internal/model"
)

var chatLang string

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask a question, or start an interactive terminal session",
	Long:  "With an argument, asks one question and prints the reply. Without one, starts an interactive loop; type 'exit' to quit or 'clear' to reset the conversation.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		lang := model.Language(strings.ToLower(chatLang))
		if !lang.Valid() {
			return eris.Errorf("cmd: unknown language %q (want english, arabic, or jordanian)", chatLang)
		}

		sess, welcome, err := env.Engine.StartSession(ctx, lang)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			var override model.Language
			if cmd.Flags().Changed("lang") {
				override = lang
			}
			_, reply, err := env.Engine.Respond(ctx, sess.ID, args[0], override)
			if err != nil {
				return err
			}
			fmt.Println(language.FormatForDisplay(reply.Content, reply.Language))
			return nil
		}

		fmt.Println(language.FormatForDisplay(welcome.Content, welcome.Language))
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			text := strings.TrimSpace(scanner.Text())
			switch {
			case text == "":
				continue
			case text == "exit" || text == "quit":
				return nil
			case text == "clear":
				welcome, err := env.Engine.ClearSession(ctx, sess.ID)
				if err != nil {
					return err
				}
				fmt.Println(language.FormatForDisplay(welcome.Content, welcome.Language))
				continue
			}

			_, reply, err := env.Engine.Respond(ctx, sess.ID, text, "")
			if err != nil {
				return err
			}
			fmt.Println(language.FormatForDisplay(reply.Content, reply.Language))
		}
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatLang, "lang", "english", "initial session language (english, arabic, jordanian)")
	rootCmd.AddCommand(chatCmd)
}
