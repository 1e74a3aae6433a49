package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stackup-dev/stackup/internal/config"
	"github.com/stackup-dev/stackup/internal/fsprobe"
	"github.com/stackup-dev/stackup/internal/scaffold"
)

var (
	createName        string
	createTemplate    string
	createFirebaseEnv string
)

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "new-project", "Project name (directory created in the current directory)")
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", scaffold.IDDefault, "Template to use (see 'templates')")
	createCmd.Flags().StringVar(&createFirebaseEnv, "firebase-env", "", "Dotenv file with the Firebase web config (react-firebase only)")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long: `Create a new project directory from a template.

The project directory must not exist yet. When an external tool fails, the
run stops and exits with that tool's exit code; anything already created is
left on disk.

Examples:
  stackup create --name demo --template react-firebase
  stackup create -n web -t react
  stackup create -n demo -t react-firebase --firebase-env ./firebase.env`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := scaffold.NewRequest(createName, createTemplate)
		if err != nil {
			return err
		}

		settings, err := config.Current()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		s := &scaffold.Scaffolder{
			FS:       fsprobe.OS(),
			Runner:   newRunner(cmd),
			Settings: settings,
			Out:      cmd.OutOrStdout(),
			Err:      cmd.ErrOrStderr(),
			Version:  buildVersion,
		}

		result, err := s.Create(cmd.Context(), req, cwd, scaffold.Options{FirebaseEnv: createFirebaseEnv})
		if err != nil {
			return err
		}

		printSummary(cmd.OutOrStdout(), req, result)
		return nil
	},
}

func printSummary(w io.Writer, req scaffold.Request, result *scaffold.Result) {
	fmt.Fprintln(w)
	color.New(color.FgGreen, color.Bold).Fprint(w, "Success!")
	fmt.Fprintf(w, " Created %s with template %s at %s\n", req.ProjectName, result.Template, result.Layout.Root)

	if len(result.Warnings) > 0 {
		color.New(color.FgYellow).Fprintln(w, "\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	if len(result.NextSteps) > 0 {
		fmt.Fprintln(w, "\nNext steps:")
		for i, step := range result.NextSteps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, color.CyanString(step))
		}
	}
}
