package main

import (
	"context"
	"errors"

	"oficina_quotes/internal/adapter/persistence/fixture"
	"oficina_quotes/internal/adapter/persistence/repository"
	"oficina_quotes/internal/infrastructure/database"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// connectFunc is swapped in tests.
type connectFunc func(ctx context.Context) (*dynamodb.Client, error)

func newRootCommand(log logrus.FieldLogger) *cobra.Command {
	root := &cobra.Command{
		Use:   "tables",
		Short: "Manage the DynamoDB tables of the quote service",
		Long: `Create the quote, slot, part, service order and warranty tables
and load reference data into them for local environments.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newCreateCommand(log, database.ConnectDynamoDB),
		newSeedCommand(log, database.ConnectDynamoDB),
	)
	return root
}

func newCreateCommand(log logrus.FieldLogger, connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create missing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ddb, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			created, err := repository.EnsureTables(cmd.Context(), ddb)
			if err != nil {
				return err
			}
			log.WithField("created", created).Info("tables ready")
			return nil
		},
	}
}

func newSeedCommand(log logrus.FieldLogger, connect connectFunc) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load parts, service orders and warranties from a JSON fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			fx, err := fixture.Load(file)
			if err != nil {
				return err
			}
			ddb, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := fx.WriteTo(cmd.Context(), repository.NewSeeder(ddb)); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"parts":          len(fx.Parts),
				"service_orders": len(fx.ServiceOrders),
				"warranties":     len(fx.Warranties),
			}).Info("fixture loaded")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures/workshop.json", "fixture file")
	return cmd
}
