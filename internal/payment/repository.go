package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type Repository interface {
	UpsertSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, transactionID string) (*Session, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertSession(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s.Data)
	if err != nil {
		return err
	}

	const q = `
	INSERT INTO payment_sessions (
		transaction_id,
		total_amount,
		status,
		data,
		last_operation
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (transaction_id)
	DO UPDATE SET
		total_amount = EXCLUDED.total_amount,
		status = EXCLUDED.status,
		data = EXCLUDED.data,
		last_operation = EXCLUDED.last_operation,
		updated_at = now();
	`

	_, err = r.db.ExecContext(ctx, q,
		s.TransactionID, s.TotalAmount, string(s.Status), data, s.LastOperation(),
	)
	return err
}

func (r *repository) GetSession(ctx context.Context, transactionID string) (*Session, error) {
	const q = `
	SELECT transaction_id, total_amount, status, data
	FROM payment_sessions WHERE transaction_id = $1;
	`

	row := r.db.QueryRowContext(ctx, q, transactionID)

	var (
		s      Session
		status string
		data   []byte
	)
	if err := row.Scan(&s.TransactionID, &s.TotalAmount, &status, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.Status = Status(status)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.Data); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
