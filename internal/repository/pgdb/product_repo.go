package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	db   DB
	conv converter.ProductConverter
}

func NewProductRepo(db DB, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		db:   db,
		conv: conv,
	}
}

// ListProducts возвращает все товары в порядке id.
func (p *ProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, price, quantity, product_type_id, owner_id, image_key, created_at
		FROM products
		ORDER BY id
	`

	rows, err := tr.QuerierFromCtx(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, e.NewStoreError(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Title, &model.Description, &model.Price, &model.Quantity,
			&model.ProductTypeID, &model.OwnerID, &model.ImageKey, &model.CreatedAt,
		); err != nil {
			return nil, e.NewStoreError(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.NewStoreError(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetProductWithOwner возвращает товар с данными владельца. Если товара нет, возвращает (nil, nil).
func (p *ProductRepo) GetProductWithOwner(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT
			pr.id, pr.title, pr.description, pr.price, pr.quantity,
			pr.product_type_id, pr.owner_id, pr.image_key, pr.created_at,
			u.id, u.email, u.first_name, u.last_name
		FROM products pr
		JOIN users u ON u.id = pr.owner_id
		WHERE pr.id = $1
	`

	var model converter.ProductModel
	var owner converter.UserModel
	err := tr.QuerierFromCtx(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Title, &model.Description, &model.Price, &model.Quantity,
		&model.ProductTypeID, &model.OwnerID, &model.ImageKey, &model.CreatedAt,
		&owner.ID, &owner.Email, &owner.FirstName, &owner.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.NewStoreError(whereami.WhereAmI(), err)
	}

	return p.conv.WithOwner(&model, &owner), nil
}

// AddProduct вставляет товар и возвращает записанную строку.
// Если в контексте есть транзакция, запись идёт в ней.
func (p *ProductRepo) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)

	// VALUES ($1..$7) title, description, price, quantity, product_type_id, owner_id, image_key
	query := `
		INSERT INTO products (title, description, price, quantity, product_type_id, owner_id, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := tr.QuerierFromCtx(ctx, p.db).QueryRow(ctx, query,
		model.Title,
		model.Description,
		model.Price,
		model.Quantity,
		model.ProductTypeID,
		model.OwnerID,
		model.ImageKey,
	).Scan(&model.ID, &model.CreatedAt)
	if err != nil {
		return nil, e.NewStoreError(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}
