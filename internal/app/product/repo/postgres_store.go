package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_product"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
)

const uniqueViolation = "23505"

// PostgresStore implements ProductStore on PostgreSQL through a pgx pool.
// Each mutating call runs in one transaction that also inserts the outbox
// rows of the aggregate.
type PostgresStore struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool, clk clock.Clock) *PostgresStore {
	return &PostgresStore{pool: pool, clock: clk}
}

var _ contracts.ProductStore = (*PostgresStore)(nil)

var selectProduct = fmt.Sprintf(`SELECT %s, %s, %s, %s::text, %s, %s, %s, %s FROM %s`,
	m_product.ProductID, m_product.Name, m_product.Category, m_product.Price,
	m_product.Quantity, m_product.Version, m_product.CreatedAt, m_product.UpdatedAt,
	m_product.TableName)

// GetByID retrieves a product by ID.
func (s *PostgresStore) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx, selectProduct+` WHERE product_id = $1`, productID)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewProductNotFound(productID)
		}
		return nil, classifyPostgres("read product", err)
	}
	return product, nil
}

// Exists checks if a product exists.
func (s *PostgresStore) Exists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, classifyPostgres("check product existence", err)
	}
	return exists, nil
}

// ExistsByName checks whether the name is already taken.
func (s *PostgresStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, classifyPostgres("check product name", err)
	}
	return exists, nil
}

// List returns every product ordered by name.
func (s *PostgresStore) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := s.pool.Query(ctx, selectProduct+` ORDER BY name`)
	if err != nil {
		return nil, classifyPostgres("list products", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, classifyPostgres("list products", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPostgres("list products", err)
	}

	return products, nil
}

// Insert persists a new product and its creation event.
func (s *PostgresStore) Insert(ctx context.Context, product *domain.Product) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (product_id, name, category, price, quantity, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8)`,
			product.ID(), product.Name(), product.Category().String(), product.Price().String(),
			product.Quantity(), product.Version(), product.CreatedAt(), product.UpdatedAt(),
		)
		if err != nil {
			return err
		}
		return s.insertEvents(ctx, tx, product.DomainEvents())
	})
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ProductNameConflictError{Name: product.Name()}
		}
		return classifyPostgres("insert product", err)
	}

	product.ClearEvents()
	product.Changes().Clear()
	return nil
}

// Update writes the dirty fields if the stored version is unchanged.
func (s *PostgresStore) Update(ctx context.Context, product *domain.Product) error {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	var sets []string
	args := []interface{}{product.ID(), product.Version(), product.UpdatedAt()}
	set := func(column, cast string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d%s", column, len(args), cast))
	}

	if changes.Dirty(domain.FieldName) {
		set(m_product.Name, "", product.Name())
	}
	if changes.Dirty(domain.FieldCategory) {
		set(m_product.Category, "", product.Category().String())
	}
	if changes.Dirty(domain.FieldPrice) {
		set(m_product.Price, "::text::numeric", product.Price().String())
	}
	if changes.Dirty(domain.FieldQuantity) {
		set(m_product.Quantity, "", product.Quantity())
	}
	sets = append(sets, "updated_at = $3", "version = version + 1")

	query := fmt.Sprintf(`UPDATE products SET %s WHERE product_id = $1 AND version = $2`, strings.Join(sets, ", "))

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1)`, product.ID()).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domain.NewProductNotFound(product.ID())
			}
			return fmt.Errorf("update product %s: %w", product.ID(), domain.ErrConcurrentModification)
		}
		return s.insertEvents(ctx, tx, product.DomainEvents())
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrConcurrentModification):
		return err
	case isUniqueViolation(err):
		return &domain.ProductNameConflictError{Name: product.Name()}
	default:
		return classifyPostgres("update product", err)
	}

	product.ClearEvents()
	product.Changes().Clear()
	return nil
}

// Delete removes the product row and records its deletion event.
func (s *PostgresStore) Delete(ctx context.Context, productID string) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID); err != nil {
			return err
		}
		deleted := &domain.ProductDeletedEvent{ProductID: productID, DeletedAt: s.clock.Now()}
		return s.insertEvents(ctx, tx, []domain.DomainEvent{deleted})
	})
	return classifyPostgres("delete product", err)
}

// UpdateQuantity locks the row, applies the delta and writes it back in one
// transaction.
func (s *PostgresStore) UpdateQuantity(ctx context.Context, update contracts.QuantityUpdate) (*domain.QuantityAdjustedEvent, error) {
	var adjusted *domain.QuantityAdjustedEvent

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var current int64
		err := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE product_id = $1 FOR UPDATE`, update.ProductID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewProductNotFound(update.ProductID)
			}
			return err
		}

		now := s.clock.Now()
		adjusted = domain.AdjustQuantity(update.ProductID, current, update.Requested, update.Direction, update.DeliveryKey, now)

		var stored int64
		err = tx.QueryRow(ctx,
			`UPDATE products SET quantity = $2, updated_at = $3 WHERE product_id = $1 RETURNING quantity`,
			update.ProductID, adjusted.Current, now,
		).Scan(&stored)
		if err != nil {
			return err
		}
		adjusted.Current = stored

		return s.insertEvents(ctx, tx, []domain.DomainEvent{adjusted})
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, classifyPostgres("update quantity", err)
	}

	return adjusted, nil
}

func (s *PostgresStore) insertEvents(ctx context.Context, tx pgx.Tx, events []domain.DomainEvent) error {
	now := s.clock.Now()
	for _, event := range events {
		out, err := contracts.EnrichEvent(event, now)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO outbox_events (event_id, event_type, aggregate_id, payload, status, created_at, retry_count)
			VALUES ($1, $2, $3, $4, $5, $6, 0)`,
			out.EventID, out.EventType, out.AggregateID, json.RawMessage(out.Payload), m_outbox.StatusPending, out.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert outbox event: %w", err)
		}
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		data  m_product.Data
		price string
	)
	err := row.Scan(
		&data.ProductID,
		&data.Name,
		&data.Category,
		&price,
		&data.Quantity,
		&data.Version,
		&data.CreatedAt,
		&data.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	money, err := domain.NewMoney(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %s: %w", data.ProductID, err)
	}

	return domain.ReconstructProduct(
		data.ProductID,
		data.Name,
		domain.Category(data.Category),
		money,
		data.Quantity,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
