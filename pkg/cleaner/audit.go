// pkg/cleaner/audit.go
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
)

// AuditSink persists cleaning operations so that every normalization
// applied to a dataset can be reviewed later
type AuditSink interface {
	Record(ctx context.Context, operations []model.CleaningOperation) error
}

// PostgresAuditSink writes cleaning operations into a tracking table
type PostgresAuditSink struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// OpenAuditDB opens a Postgres connection for the audit sink
func OpenAuditDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}
	return db, nil
}

// NewPostgresAuditSink creates a sink and ensures the tracking table exists
func NewPostgresAuditSink(db *sqlx.DB, logger *zap.Logger) (*PostgresAuditSink, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	sink := &PostgresAuditSink{
		db:     db,
		logger: logger.Named("audit-sink"),
	}

	if err := sink.setupTrackingTable(); err != nil {
		return nil, fmt.Errorf("failed to setup tracking table: %w", err)
	}

	return sink, nil
}

// setupTrackingTable ensures the cleaned_on_load tracking table exists
func (s *PostgresAuditSink) setupTrackingTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS public.cleaned_on_load (
			id SERIAL PRIMARY KEY,
			batch_id TEXT NOT NULL,
			dataset TEXT NOT NULL,
			column_name TEXT NOT NULL,
			original_value TEXT,
			new_value TEXT NOT NULL,
			row_identifier TEXT NOT NULL,
			cleaning_operation TEXT NOT NULL,
			cleaning_reason TEXT NOT NULL,
			cleaned_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create tracking table: %w", err)
	}

	s.logger.Info("Ensured cleaned_on_load table exists")
	return nil
}

// Record batch inserts cleaning operations under a single batch ID
func (s *PostgresAuditSink) Record(ctx context.Context, operations []model.CleaningOperation) error {
	if len(operations) == 0 {
		return nil
	}

	batchID := uuid.New().String()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO public.cleaned_on_load
		(batch_id, dataset, column_name, original_value, new_value,
		 row_identifier, cleaning_operation, cleaning_reason, cleaned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, op := range operations {
		_, err = stmt.ExecContext(ctx,
			batchID,
			op.Dataset,
			op.ColumnName,
			toNullableString(op.OriginalValue),
			op.NewValue,
			op.RowIdentifier,
			op.Operation,
			op.Reason,
			op.CleanedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cleaning operation: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Recorded cleaning operations",
		zap.String("batchID", batchID),
		zap.Int("count", len(operations)))
	return nil
}

// toNullableString safely converts a cell value to a nullable string
func toNullableString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := model.ToString(v)
	return &s
}
