// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "caraban-api",
	Short: "Caraban API is the backend for the Caraban campsite-booking app",
	Long: `Caraban API is the backend service for the Caraban campsite-booking
application. It serves a JSON REST API for campsites, reservations and
reviews, and signs users in through Firebase or Kakao bearer tokens.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
