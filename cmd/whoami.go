package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gymlog/cli/internal/route"
	"gymlog/cli/internal/session"
)

// whoamiCmd shows the restored session without calling the backend.
var whoamiCmd = &cobra.Command{
	Use:         "whoami",
	Short:       "Show the signed-in account",
	Annotations: inGraph(route.GraphAny),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd.Context())
		s := a.store.Current()
		if s.Empty() {
			a.println("🔒 You're not signed in yet!")
			a.hint("Run 'gymlog login' to get started.")
			return nil
		}

		data := pterm.TableData{
			{"Field", "Value"},
			{"Name", s.Name},
			{"E-mail", s.Email},
			{"User ID", s.UserID},
		}
		if url := a.client.AvatarURL(s.AvatarRef); url != "" {
			data = append(data, []string{"Photo", url})
		}
		if claims, ok := session.InspectToken(s.AuthToken); ok && !claims.ExpiresAt.IsZero() {
			expiry := claims.ExpiresAt.Local().Format(time.RFC1123)
			if claims.Expired(time.Now()) {
				expiry += " (expired)"
			}
			data = append(data, []string{"Token expires", expiry})
		}
		return a.table(data)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
