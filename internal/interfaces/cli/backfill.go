package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamotph/adr-intelligence/internal/application/backfill"
	"github.com/gamotph/adr-intelligence/internal/domain/vocabulary"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/postgres"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/gamotph/adr-intelligence/internal/normalization"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// NewBackfillCmd creates the backfill command. Unlike the query commands it
// connects straight to the report store rather than going through the API
// server, so it can run from a maintenance host with the server down.
func NewBackfillCmd() *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Fill reaction_normalized for stored reports that lack it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			logger := cliCtx.Logger

			vocab := vocabulary.NewStore(cfg.Vocabulary, logger)
			if err := vocab.EnsureLoaded(); err != nil {
				return errors.Wrap(err, errors.CodeVocabularyMissing, "load vocabulary lists")
			}

			conn, err := postgres.NewConnection(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := repositories.NewPostgresReportRepo(conn, logger)
			reactions := normalization.NewReactionNormalizer(vocab)
			svc := backfill.NewService(repo, reactions, cfg.Analytics.ReactionListThreshold, pageSize, logger)

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			result, err := svc.Run(ctx)
			if err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("backfill complete: scanned=%d updated=%d skipped=%d",
				result.Scanned, result.Updated, result.Skipped))
			return nil
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 500, "rows fetched per page")
	return cmd
}
