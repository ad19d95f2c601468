package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/donation-gateway/internal/contribution"
	contributionpg "github.com/frahmantamala/donation-gateway/internal/contribution/postgres"
	contributionmodel "github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
	"github.com/frahmantamala/donation-gateway/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	clearData bool

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Seed sample contributions for development",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runSeeder(); err != nil {
				fmt.Fprintf(os.Stderr, "seed: %v\n", err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	rootCmd.AddCommand(seedCmd)
}

func runSeeder() error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging.Env)
	log := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return err
	}

	if clearData {
		if err := gormDB.Exec("DELETE FROM contributions").Error; err != nil {
			return fmt.Errorf("clearing contributions: %w", err)
		}
		log.Info("cleared existing contributions")
	}

	repo := contributionpg.NewContributionRepository(gormDB)
	svc := contribution.NewService(repo, log)

	ctx := context.Background()
	eventID := int64(42)
	participantID := int64(7)
	samples := []*contributionmodel.Contribution{
		{
			ContactID:      1001,
			AmountMinor:    18000,
			Currency:       "NIS",
			CorrelationKey: uuid.NewString(),
		},
		{
			ContactID:      1002,
			AmountMinor:    5000,
			Currency:       "USD",
			CorrelationKey: uuid.NewString(),
		},
		{
			ContactID:      1003,
			EventID:        &eventID,
			ParticipantID:  &participantID,
			AmountMinor:    100,
			Currency:       "NIS",
			CorrelationKey: uuid.NewString(),
		},
	}

	for _, c := range samples {
		if err := svc.Create(ctx, c); err != nil {
			return err
		}
		log.Info("seeded contribution",
			"contribution_id", c.ID,
			"amount_minor", c.AmountMinor,
			"currency", c.Currency)
	}

	return nil
}
