package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/disgoorg/card-binder/internal/config"
	"github.com/disgoorg/card-binder/internal/domain/collection"
)

var (
	migrateFrom string
	migrateTo   string
)

// migrateCMD copies the stored collection from one backend to another. The
// postgres schema is created on connect.
var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the collection to another storage backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		from := config.Backend(migrateFrom)
		if from == "" {
			from = cfg.Storage.Backend
		}
		to := config.Backend(migrateTo)
		if from == to {
			return fmt.Errorf("source and target are both %s", from)
		}

		src, closeSrc, err := openRepository(ctx, from)
		if err != nil {
			slog.Error("Failed to open source storage", slog.String("type", "sys"), slog.Any("error", err))
			return err
		}
		defer closeSrc()

		dst, closeDst, err := openRepository(ctx, to)
		if err != nil {
			slog.Error("Failed to open target storage", slog.String("type", "sys"), slog.Any("error", err))
			return err
		}
		defer closeDst()

		key := cfg.Storage.Key
		data, err := src.Get(ctx, key)
		if errors.Is(err, collection.ErrNotFound) {
			slog.Info("Nothing to migrate", slog.String("type", "sys"), slog.String("backend", string(from)))
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := collection.Decode(data); err != nil {
			return fmt.Errorf("source collection is malformed: %w", err)
		}
		if err := dst.Put(ctx, key, data); err != nil {
			slog.Error("Migration failed", slog.String("type", "sys"), slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully",
			slog.String("type", "sys"),
			slog.String("from", string(from)),
			slog.String("to", string(to)),
			slog.Int("bytes", len(data)),
		)
		return nil
	},
}

func init() {
	migrateCMD.Flags().StringVar(&migrateFrom, "from", "", "source backend, defaults to storage.backend")
	migrateCMD.Flags().StringVar(&migrateTo, "to", "", "target backend: file, redis, mongo, spaces or postgres")
	_ = migrateCMD.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCMD)
}
