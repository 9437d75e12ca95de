package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all workout data for an account",
	Long: `Clears the profile, plan, chat, workout log, calendar and lift history.
The account itself is kept. Without --yes the email must be typed again to
confirm, which needs an interactive terminal.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("refusing to reset without --yes when stdin is not a terminal")
		}
		ok, err := confirmEmail(cmd.InOrStdin(), cmd.OutOrStdout(), email)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("confirmation did not match, nothing was reset")
		}
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	userID, err := a.userID(ctx, cmd)
	if err != nil {
		return err
	}

	state, apiErr := a.workouts.ClearAll(ctx, userID, 0)
	if apiErr != nil {
		return apiErr
	}
	fmt.Fprintln(cmd.OutOrStdout(), completedStyle.Render(fmt.Sprintf("Cleared workout data (version %d).", state.Version)))
	return nil
}

func confirmEmail(in io.Reader, out io.Writer, email string) (bool, error) {
	fmt.Fprintf(out, "Type %s to confirm: ", email)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return email != "" && strings.TrimSpace(line) == email, nil
}
