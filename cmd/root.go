package cmd

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/chartiz/internal/app"
	"github.com/abhisek/chartiz/internal/templates"
)

var rootCmd = &cobra.Command{
	Use:   "chartiz",
	Short: "Chart reading quiz",
	Long:  "Chartiz — terminal quiz that asks arithmetic questions about a randomized chart.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("templates", "", "Path to a question template file (overrides "+templates.EnvVar+" env var)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for chart values and questions (0 = time based)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveTemplatesPath returns the template file using --templates flag
// (highest priority), then the CHARTIZ_TEMPLATES env var. An empty result
// selects the embedded set.
func resolveTemplatesPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("templates")
	return templates.ResolvePath(p)
}

// seedFlag returns the --seed value as a seeded generator.
func seedFlag(cmd *cobra.Command) *rand.Rand {
	seed, _ := cmd.Flags().GetUint64("seed")
	return app.NewRand(seed)
}
