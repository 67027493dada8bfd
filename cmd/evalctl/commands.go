package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"teacher-eval/backend/internal/dto"
	"teacher-eval/backend/internal/service"
	"teacher-eval/backend/pkg/database"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "evalctl",
		Short:         "Administration commands for the teacher evaluation portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default ./config/config.yaml)")

	// every command opens the database lazily so --help works offline
	withApp := func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()
			return run(cmd, a, args)
		}
	}

	root.AddCommand(
		newMigrateCmd(withApp),
		newSeedCmd(withApp),
		newStandardsCmd(withApp),
		newCycleCmd(withApp),
		newUserCmd(withApp),
	)
	return root
}

type runWithApp func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error

func newMigrateCmd(withApp runWithApp) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if err := database.RunMigrations(a.sqlDB, a.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		}),
	}
}

func newSeedCmd(withApp runWithApp) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Install reference data",
	}

	seedCmd.AddCommand(&cobra.Command{
		Use:   "standards",
		Short: "Replace all performance standards with the default list",
		Long: `Deletes every performance standard and inserts the default list of eleven.
The weights must total 100; the command refuses to run while indicators reference the current standards.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			seeded, err := a.standards().Seed(cmd.Context(), service.DefaultStandards())
			if err != nil {
				return err
			}
			renderStandards(cmd.OutOrStdout(), seeded)
			return nil
		}),
	})

	return seedCmd
}

func newStandardsCmd(withApp runWithApp) *cobra.Command {
	standardsCmd := &cobra.Command{
		Use:   "standards",
		Short: "Performance standard commands",
	}

	standardsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the configured performance standards",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			standards, err := a.standards().List(cmd.Context())
			if err != nil {
				return err
			}
			renderStandards(cmd.OutOrStdout(), standards)
			return nil
		}),
	})

	return standardsCmd
}

func newCycleCmd(withApp runWithApp) *cobra.Command {
	cycleCmd := &cobra.Command{
		Use:   "cycle",
		Short: "Academic cycle commands",
	}

	cycleCmd.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "Print the active academic cycle, creating the default one when none exists",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			cycle, err := a.cycles().GetCurrent(cmd.Context())
			if err != nil {
				return err
			}
			renderCycle(cmd.OutOrStdout(), cycle)
			return nil
		}),
	})

	return cycleCmd
}

func newUserCmd(withApp runWithApp) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Account commands",
	}

	var req dto.CreateUserRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account and print its temporary password",
		Example: `  evalctl user create --name "مدير النظام" --email admin@school.sa --role admin`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			created, err := a.users().CreateUser(cmd.Context(), &req, "")
			if err != nil {
				return err
			}
			renderCreatedUser(cmd.OutOrStdout(), created)
			return nil
		}),
	}
	createCmd.Flags().StringVar(&req.Name, "name", "", "display name (required)")
	createCmd.Flags().StringVar(&req.Email, "email", "", "login e-mail (required)")
	createCmd.Flags().StringVar(&req.Role, "role", "admin", "teacher | reviewer | admin")
	createCmd.Flags().StringVar(&req.School, "school", "", "school name")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("email")

	userCmd.AddCommand(createCmd)
	return userCmd
}
