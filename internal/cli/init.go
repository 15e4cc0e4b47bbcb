package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ThalesGSN/SecretSanta/internal/infra/scaffold"
)

func initCmd() *cobra.Command {
	var dir string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write starter santa.yaml, participants.csv, and email template files",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := scaffold.NewInitializer().Init(dir, force); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Initialized %s — edit participants.csv and santa.yaml, then run `santa run --dry-run`.\n", dir)
			return nil
		},
	}

	c.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return c
}
