package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository implements catalog.Repository on a MongoDB collection.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a repository over the "products" collection.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Price       int64              `bson:"price"`
	Colors      []string           `bson:"colors,omitempty"`
	Sizes       []string           `bson:"sizes,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	UploadTime  time.Time          `bson:"uploadTime"`
}

func (d *productDocument) toDomain() *catalog.Product {
	return &catalog.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Colors:      d.Colors,
		Sizes:       d.Sizes,
		ImageURL:    d.ImageURL,
		UploadTime:  d.UploadTime,
	}
}

// GetByID returns the product or domainErrors.ErrProductNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domainErrors.ErrInvalidProductID
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns products matching the filter ordered by upload time.
func (r *ProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	direction := -1
	if filter.SortOrder == catalog.SortAscending {
		direction = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: "uploadTime", Value: direction}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]*catalog.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toDomain())
	}
	return products, nil
}

// Create persists a new product with a server-set upload time.
func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) (string, error) {
	doc := productDocument{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		ImageURL:    p.ImageURL,
		UploadTime:  time.Now(),
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert product: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

// Update merges the patch into the stored document and resets the upload
// time. Last write wins.
func (r *ProductRepository) Update(ctx context.Context, id string, patch catalog.ProductPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domainErrors.ErrInvalidProductID
	}

	set := bson.M{"uploadTime": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Colors != nil {
		set["colors"] = patch.Colors
	}
	if patch.Sizes != nil {
		set["sizes"] = patch.Sizes
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return domainErrors.ErrProductNotFound
	}
	return nil
}

// CreateIndexes creates the indexes the category filter and upload-time
// sort need. Nothing else is indexed.
func (r *ProductRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "uploadTime", Value: -1}}},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}
