package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

var ErrNotFound = errors.New("not found")

type MySQLCatalogRepo struct{ db *sql.DB }

func NewMySQLCatalogRepo(db *sql.DB) *MySQLCatalogRepo { return &MySQLCatalogRepo{db: db} }

func (r *MySQLCatalogRepo) GetItem(ctx context.Context, code string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT code, name, unit_price, section_ref, order_type, is_available
FROM items WHERE code = ?`, code)

	var it domain.Item
	var orderType string
	if err := row.Scan(&it.Code, &it.Name, &it.UnitPrice, &it.SectionRef, &orderType, &it.IsAvailable); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	it.OrderType = domain.OrderType(orderType)
	return &it, nil
}

var _ usecase.CatalogRepo = (*MySQLCatalogRepo)(nil)
