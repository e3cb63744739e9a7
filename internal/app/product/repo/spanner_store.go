package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-inventory-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-inventory-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_outbox"
	"github.com/light-bringer/catalog-inventory-service/internal/models/m_product"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-inventory-service/internal/pkg/query"
)

// SpannerStore implements ProductStore on Cloud Spanner. Writes are built as
// mutations and applied through a committer plan together with the outbox
// rows of the aggregate.
type SpannerStore struct {
	client    *spanner.Client
	committer *committer.Committer
	products  *m_product.Model
	outbox    *m_outbox.Model
	clock     clock.Clock
}

// NewSpannerStore creates a new SpannerStore.
func NewSpannerStore(client *spanner.Client, clk clock.Clock) *SpannerStore {
	return &SpannerStore{
		client:    client,
		committer: committer.NewCommitter(client),
		products:  m_product.NewModel(),
		outbox:    m_outbox.NewModel(),
		clock:     clk,
	}
}

var _ contracts.ProductStore = (*SpannerStore)(nil)

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (s *SpannerStore) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := s.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NewProductNotFound(productID)
		}
		return nil, classifySpanner("read product", err)
	}
	return rowToProduct(row)
}

// Exists checks if a product exists.
func (s *SpannerStore) Exists(ctx context.Context, productID string) (bool, error) {
	_, err := s.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, []string{m_product.ProductID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, classifySpanner("check product existence", err)
	}
	return true, nil
}

// ExistsByName looks the name up through the unique name index.
func (s *SpannerStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := s.client.Single().ReadRowUsingIndex(ctx, m_product.TableName, m_product.NameIndex, spanner.Key{name}, []string{m_product.ProductID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, classifySpanner("check product name", err)
	}
	return true, nil
}

// List returns every product ordered by name.
func (s *SpannerStore) List(ctx context.Context) ([]*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.ProductID, m_product.Name, m_product.Category, m_product.Price,
			m_product.Quantity, m_product.Version, m_product.CreatedAt, m_product.UpdatedAt).
		OrderBy(m_product.Name, query.Asc).
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*domain.Product, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifySpanner("list products", err)
		}

		product, err := rowToProduct(row)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// Insert persists a new product and its creation event.
func (s *SpannerStore) Insert(ctx context.Context, product *domain.Product) error {
	plan := committer.NewPlan()
	plan.Add(s.products.InsertMut(productToData(product)))

	if err := s.addEvents(plan, product.DomainEvents()); err != nil {
		return err
	}

	if err := s.committer.Apply(ctx, plan); err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return &domain.ProductNameConflictError{Name: product.Name()}
		}
		return classifySpanner("insert product", err)
	}

	product.ClearEvents()
	product.Changes().Clear()
	return nil
}

// Update writes the dirty fields under an optimistic version check.
func (s *SpannerStore) Update(ctx context.Context, product *domain.Product) error {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}
	if changes.Dirty(domain.FieldCategory) {
		updates[m_product.Category] = product.Category().String()
	}
	if changes.Dirty(domain.FieldPrice) {
		updates[m_product.Price] = spanner.NullNumeric{Numeric: *product.Price().Rat(), Valid: true}
	}
	if changes.Dirty(domain.FieldQuantity) {
		updates[m_product.Quantity] = product.Quantity()
	}
	updates[m_product.UpdatedAt] = product.UpdatedAt()
	updates[m_product.Version] = product.Version() + 1

	plan := committer.NewPlan()
	plan.Add(s.products.UpdateMut(product.ID(), updates))
	if err := s.addEvents(plan, product.DomainEvents()); err != nil {
		return err
	}

	guard := committer.VersionGuard{
		Table:    m_product.TableName,
		Key:      spanner.Key{product.ID()},
		Column:   m_product.Version,
		Expected: product.Version(),
	}

	err := s.committer.ApplyWithVersionCheck(ctx, guard, plan)
	switch {
	case err == nil:
	case errors.Is(err, committer.ErrVersionMismatch):
		return fmt.Errorf("update product %s: %w", product.ID(), domain.ErrConcurrentModification)
	case errors.Is(err, committer.ErrRowNotFound):
		return domain.NewProductNotFound(product.ID())
	case spanner.ErrCode(err) == codes.AlreadyExists:
		return &domain.ProductNameConflictError{Name: product.Name()}
	default:
		return classifySpanner("update product", err)
	}

	product.ClearEvents()
	product.Changes().Clear()
	return nil
}

// Delete removes the product row and records its deletion event.
func (s *SpannerStore) Delete(ctx context.Context, productID string) error {
	plan := committer.NewPlan()
	plan.Add(s.products.DeleteMut(productID))
	deleted := &domain.ProductDeletedEvent{ProductID: productID, DeletedAt: s.clock.Now()}
	if err := s.addEvents(plan, []domain.DomainEvent{deleted}); err != nil {
		return err
	}

	return classifySpanner("delete product", s.committer.Apply(ctx, plan))
}

// UpdateQuantity reads the current stock and writes the adjusted level in a
// single read-write transaction. Spanner retries the transaction on abort,
// so concurrent adjustments of the same product serialize.
func (s *SpannerStore) UpdateQuantity(ctx context.Context, update contracts.QuantityUpdate) (*domain.QuantityAdjustedEvent, error) {
	var adjusted *domain.QuantityAdjustedEvent

	err := s.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{update.ProductID}, []string{m_product.Quantity})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return nil, domain.NewProductNotFound(update.ProductID)
			}
			return nil, err
		}

		var current int64
		if err := row.Column(0, &current); err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}

		now := s.clock.Now()
		adjusted = domain.AdjustQuantity(update.ProductID, current, update.Requested, update.Direction, update.DeliveryKey, now)

		plan := committer.NewPlan()
		plan.Add(s.products.QuantityMut(update.ProductID, adjusted.Current, now))
		if err := s.addEvents(plan, []domain.DomainEvent{adjusted}); err != nil {
			return nil, err
		}
		return plan, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.NewProductNotFound(update.ProductID)
		}
		return nil, classifySpanner("update quantity", err)
	}

	return adjusted, nil
}

func (s *SpannerStore) addEvents(plan *committer.CommitPlan, events []domain.DomainEvent) error {
	now := s.clock.Now()
	for _, event := range events {
		out, err := contracts.EnrichEvent(event, now)
		if err != nil {
			return err
		}
		plan.Add(s.outbox.InsertMut(&m_outbox.Data{
			EventID:     out.EventID,
			EventType:   out.EventType,
			AggregateID: out.AggregateID,
			Payload:     spanner.NullJSON{Value: json.RawMessage(out.Payload), Valid: true},
			Status:      out.Status,
			CreatedAt:   out.CreatedAt,
		}))
	}
	return nil
}

func rowToProduct(row *spanner.Row) (*domain.Product, error) {
	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return dataToDomain(&data)
}

// productToData converts a domain Product to database Data.
func productToData(product *domain.Product) *m_product.Data {
	data := &m_product.Data{
		ProductID: product.ID(),
		Name:      product.Name(),
		Category:  product.Category().String(),
		Quantity:  product.Quantity(),
		Version:   product.Version(),
		CreatedAt: product.CreatedAt(),
		UpdatedAt: product.UpdatedAt(),
	}
	data.Price.Set(product.Price().Rat())
	return data
}

// dataToDomain converts database Data to a domain Product.
func dataToDomain(data *m_product.Data) (*domain.Product, error) {
	price, err := domain.MoneyFromRat(&data.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %s: %w", data.ProductID, err)
	}

	return domain.ReconstructProduct(
		data.ProductID,
		data.Name,
		domain.Category(data.Category),
		price,
		data.Quantity,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}
