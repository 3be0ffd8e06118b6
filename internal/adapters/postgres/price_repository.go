package postgres

import (
	"context"
	"errors"
	"fmt"

	"coindesk/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const priceColumns = `id, updated, updated_iso, updateduk, disclaimer, chart_name, created_at, updated_at,
	currency_type, rate, rate_float, currency_name, chinese_name`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PriceRepository struct {
	pool *pgxpool.Pool
}

func (r *PriceRepository) Create(ctx context.Context, price domain.Price) (domain.Price, error) {
	created, err := insertPrice(ctx, r.pool, price)
	if err != nil {
		return domain.Price{}, err
	}
	return created, nil
}

// CreateBatch inserts all prices in one transaction: either every record is
// persisted or none is.
func (r *PriceRepository) CreateBatch(ctx context.Context, prices []domain.Price) ([]domain.Price, error) {
	if len(prices) == 0 {
		return nil, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := make([]domain.Price, 0, len(prices))
	for _, price := range prices {
		p, insertErr := insertPrice(ctx, tx, price)
		if insertErr != nil {
			return nil, insertErr
		}
		created = append(created, p)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

func (r *PriceRepository) GetByID(ctx context.Context, id int64) (domain.Price, error) {
	q := `select ` + priceColumns + ` from coin_desk where id = $1;`

	price, err := scanPrice(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Price{}, domain.ErrPriceNotFound
		}
		return domain.Price{}, fmt.Errorf("failed to select price %d: %w", id, err)
	}
	return price, nil
}

func (r *PriceRepository) Update(ctx context.Context, price domain.Price) (domain.Price, error) {
	q := `
		update coin_desk set
			updated = $2, updated_iso = $3, updateduk = $4, disclaimer = $5, chart_name = $6,
			created_at = $7, updated_at = $8, currency_type = $9, rate = $10, rate_float = $11,
			currency_name = $12, chinese_name = $13
		where id = $1
		returning ` + priceColumns + `;
	`

	updated, err := scanPrice(r.pool.QueryRow(ctx, q,
		price.ID,
		price.Updated,
		price.UpdatedISO,
		price.UpdatedUK,
		price.Disclaimer,
		price.ChartName,
		price.CreatedAt,
		price.UpdatedAt,
		currencyCode(price.CurrencyType),
		price.Rate,
		price.RateFloat,
		price.CurrencyName,
		price.ChineseName,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Price{}, domain.ErrPriceNotFound
		}
		return domain.Price{}, fmt.Errorf("failed to update price %d: %w", price.ID, err)
	}
	return updated, nil
}

func (r *PriceRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `delete from coin_desk where id = $1;`, id); err != nil {
		return fmt.Errorf("failed to delete price %d: %w", id, err)
	}
	return nil
}

func (r *PriceRepository) List(ctx context.Context) ([]domain.Price, error) {
	q := `select ` + priceColumns + ` from coin_desk order by id;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	prices := make([]domain.Price, 0, 16)
	for rows.Next() {
		price, scanErr := scanPrice(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan price: %w", scanErr)
		}
		prices = append(prices, price)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prices: %w", err)
	}
	return prices, nil
}

func insertPrice(ctx context.Context, db querier, price domain.Price) (domain.Price, error) {
	q := `
		insert into coin_desk (updated, updated_iso, updateduk, disclaimer, chart_name, created_at, updated_at,
			currency_type, rate, rate_float, currency_name, chinese_name)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		returning ` + priceColumns + `;
	`

	created, err := scanPrice(db.QueryRow(ctx, q,
		price.Updated,
		price.UpdatedISO,
		price.UpdatedUK,
		price.Disclaimer,
		price.ChartName,
		price.CreatedAt,
		price.UpdatedAt,
		currencyCode(price.CurrencyType),
		price.Rate,
		price.RateFloat,
		price.CurrencyName,
		price.ChineseName,
	))
	if err != nil {
		return domain.Price{}, fmt.Errorf("failed to insert %q price: %w", price.CurrencyType, err)
	}
	return created, nil
}

func scanPrice(row pgx.Row) (domain.Price, error) {
	var price domain.Price
	var code *string

	if err := row.Scan(
		&price.ID,
		&price.Updated,
		&price.UpdatedISO,
		&price.UpdatedUK,
		&price.Disclaimer,
		&price.ChartName,
		&price.CreatedAt,
		&price.UpdatedAt,
		&code,
		&price.Rate,
		&price.RateFloat,
		&price.CurrencyName,
		&price.ChineseName,
	); err != nil {
		return domain.Price{}, err
	}

	if code != nil {
		currency, err := domain.LookupCurrency(*code)
		if err != nil {
			return domain.Price{}, err
		}
		price.CurrencyType = currency
	}
	return price, nil
}

// currencyCode maps an absent currency to SQL NULL.
func currencyCode(c domain.CurrencyType) *string {
	if c.IsZero() {
		return nil
	}
	code := c.Code()
	return &code
}

func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}
