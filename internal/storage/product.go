package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
)

// ProductStorage описывает чтение каталога и справочников
type ProductStorage interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	SearchProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListBrands(ctx context.Context) ([]string, error)
	ListUnits(ctx context.Context) ([]string, error)
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productSelect = `
	SELECT p.id, p.name, COALESCE(p.description, ''), COALESCE(p.unit, ''), COALESCE(p.brand, ''), c.id, c.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// ListProducts возвращает весь каталог, отсортированный по имени
func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return r.queryProducts(ctx, productSelect+" ORDER BY p.name")
}

// SearchProducts фильтрует каталог: подстрока без учёта регистра по name/brand/description,
// точная категория, подстроки по brand и unit. Сортировка всегда по имени.
func (r *productRepository) SearchProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	query, args := buildSearchQuery(filter)
	return r.queryProducts(ctx, query, args...)
}

func buildSearchQuery(filter models.ProductFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.brand ILIKE $%d OR p.description ILIKE $%d)", n, n, n))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		args = append(args, likePattern(brand))
		where = append(where, fmt.Sprintf("p.brand ILIKE $%d", len(args)))
	}
	if unit := strings.TrimSpace(filter.Unit); unit != "" {
		args = append(args, likePattern(unit))
		where = append(where, fmt.Sprintf("p.unit ILIKE $%d", len(args)))
	}

	query := productSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY p.name LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %...%
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		var (
			p            models.Product
			categoryID   uuid.NullUUID
			categoryName sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Unit, &p.Brand, &categoryID, &categoryName); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if categoryID.Valid {
			p.Category = &models.Category{ID: categoryID.UUID, Name: categoryName.String}
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories возвращает категории по алфавиту
func (r *productRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListBrands возвращает уникальные непустые бренды
func (r *productRepository) ListBrands(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, "brand")
}

// ListUnits возвращает уникальные непустые единицы измерения
func (r *productRepository) ListUnits(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, "unit")
}

// column подставляется только из констант выше
func (r *productRepository) distinctValues(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %[1]s FROM products WHERE %[1]s IS NOT NULL AND %[1]s <> '' ORDER BY %[1]s", column)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s values: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s value: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
