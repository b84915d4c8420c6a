package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WriteOffActRepository = (*WriteOffActRepo)(nil)

// WriteOffActRepo implementación sobre PostgreSQL. Las líneas del acta se
// guardan como JSONB: el documento es autocontenido y no referencia productos.
type WriteOffActRepo struct {
	pool *pgxpool.Pool
}

// NewWriteOffActRepository construye el adaptador de actas de baja.
func NewWriteOffActRepository(pool *pgxpool.Pool) *WriteOffActRepo {
	return &WriteOffActRepo{pool: pool}
}

// Create persiste un acta. El número de acta es único.
func (r *WriteOffActRepo) Create(act *entity.WriteOffAct) error {
	if act.ID == "" {
		act.ID = uuid.New().String()
	}
	items, err := json.Marshal(act.Items)
	if err != nil {
		return fmt.Errorf("marshal act items: %w", err)
	}
	query := `
		INSERT INTO writeoff_acts (id, act_number, title, act_date, responsible, approved_by, commission_members, reason, items, created_by, is_draft, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.pool.Exec(context.Background(), query,
		act.ID, act.ActNumber, act.Title, act.ActDate, act.Responsible, act.ApprovedBy,
		act.CommissionMembers, act.Reason, items, act.CreatedBy, act.IsDraft, act.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert writeoff act: %w", err)
	}
	return nil
}

// GetByID obtiene un acta por ID.
func (r *WriteOffActRepo) GetByID(id string) (*entity.WriteOffAct, error) {
	query := `
		SELECT id, act_number, title, act_date, responsible, approved_by, commission_members, reason, items, created_by, is_draft, created_at
		FROM writeoff_acts WHERE id = $1`
	var a entity.WriteOffAct
	var items []byte
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ActNumber, &a.Title, &a.ActDate, &a.Responsible, &a.ApprovedBy,
		&a.CommissionMembers, &a.Reason, &items, &a.CreatedBy, &a.IsDraft, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get writeoff act: %w", err)
	}
	if err := json.Unmarshal(items, &a.Items); err != nil {
		return nil, fmt.Errorf("unmarshal act items: %w", err)
	}
	return &a, nil
}

// List lista las actas, fecha de acta descendente.
func (r *WriteOffActRepo) List() ([]*entity.WriteOffAct, error) {
	query := `
		SELECT id, act_number, title, act_date, responsible, approved_by, commission_members, reason, items, created_by, is_draft, created_at
		FROM writeoff_acts ORDER BY act_date DESC, created_at DESC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list writeoff acts: %w", err)
	}
	defer rows.Close()
	var list []*entity.WriteOffAct
	for rows.Next() {
		var a entity.WriteOffAct
		var items []byte
		if err := rows.Scan(&a.ID, &a.ActNumber, &a.Title, &a.ActDate, &a.Responsible, &a.ApprovedBy,
			&a.CommissionMembers, &a.Reason, &items, &a.CreatedBy, &a.IsDraft, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan writeoff act: %w", err)
		}
		if err := json.Unmarshal(items, &a.Items); err != nil {
			return nil, fmt.Errorf("unmarshal act items: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina un acta por ID.
func (r *WriteOffActRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM writeoff_acts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete writeoff act: %w", err)
	}
	return nil
}
