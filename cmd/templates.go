package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/chartiz/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect question templates",
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a template file against the template schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := templates.Load(args[0])
		if err != nil {
			return err
		}
		unsupported := templates.Unsupported(ts)
		for _, t := range unsupported {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: template type %q is not supported\n", t)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d templates, %d unsupported types\n",
			args[0], len(ts), len(unsupported))
		return nil
	},
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the templates in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveTemplatesPath(cmd)
		ts, err := templates.Load(path)
		if err != nil {
			return err
		}
		if path == "" {
			path = templates.DefaultSource
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Templates from %s:\n\n", path)
		for i, t := range ts {
			mark := ""
			if !t.Kind().Supported() {
				mark = " (unsupported)"
			}
			fmt.Fprintf(out, "%2d. %s%s\n    %s\n    variables: %s\n",
				i+1, t.Type, mark, t.Template, strings.Join(t.Variables, ", "))
		}
		return nil
	},
}

var templatesSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema for template files",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.OutOrStdout().Write(templates.Schema())
	},
}

func init() {
	templatesCmd.AddCommand(templatesValidateCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesSchemaCmd)
}
