// Package repository persists the shop catalog and incoming orders in
// sqlite. Order creation also writes an outbox row so order events can
// be published reliably after the transaction commits.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyOrder       = errors.New("order contains no items")
	ErrUnknownProduct   = errors.New("order references an unknown product")
	ErrPricelessProduct = errors.New("order references a product without a price")
	ErrMissingField     = errors.New("order is missing a required field")
	ErrZeroTotal        = errors.New("order total must be positive")
)

// OrderEventType marks outbox rows produced by order creation.
const OrderEventType = "order-completed"

type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
}

type RepoInterface interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	CreateOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error)
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
	RunMigrations(migrationsPath string) error
	Close() error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, category, image, price
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	query := `
		SELECT id, title, description, category, image, price
		FROM products
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var p domain.Product
	var price sql.NullFloat64
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	if price.Valid {
		p.Price = &price.Float64
	}
	return p, nil
}

// CreateOrder validates and persists an order together with its outbox
// event in one transaction.
func (r *Repository) CreateOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	if err := r.validateOrder(ctx, order); err != nil {
		return domain.OrderConfirmation{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderID := uuid.New().String()
	now := time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, payment, email, phone, address, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, orderID, string(order.Payment), order.Email, order.Phone, order.Address, order.Total, now)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, productID := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id)
			VALUES ($1, $2)
		`, orderID, productID)
		if err != nil {
			return domain.OrderConfirmation{}, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	payload, err := json.Marshal(map[string]any{
		"order_id":     orderID,
		"items":        order.Items,
		"total_amount": order.Total,
		"completed_at": now,
	})
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO outbox_events (aggregate_id, event_type, payload)
		VALUES ($1, $2, $3)
	`, orderID, OrderEventType, payload)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("failed to insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return domain.OrderConfirmation{ID: orderID, Total: order.Total}, nil
}

func (r *Repository) validateOrder(ctx context.Context, order domain.Order) error {
	if order.Address == "" || order.Email == "" || order.Phone == "" || order.Payment == "" {
		return ErrMissingField
	}
	if len(order.Items) == 0 {
		return ErrEmptyOrder
	}
	if order.Total <= 0 {
		return ErrZeroTotal
	}

	for _, id := range order.Items {
		product, err := r.GetProduct(ctx, id)
		if errors.Is(err, ErrProductNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		if err != nil {
			return err
		}
		if !product.Purchasable() {
			return fmt.Errorf("%w: %s", ErrPricelessProduct, id)
		}
	}
	return nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, aggregate_id, event_type, payload
		FROM outbox_events
		WHERE processed_at IS NULL
		ORDER BY id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox events: %w", err)
	}
	defer rows.Close()

	var outboxEvents []*OutboxEvent
	for rows.Next() {
		event := &OutboxEvent{}
		if err := rows.Scan(&event.ID, &event.AggregateID, &event.EventType, &event.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		outboxEvents = append(outboxEvents, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return outboxEvents, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox_events
		SET processed_at = $1
		WHERE id = $2
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark event as processed: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
