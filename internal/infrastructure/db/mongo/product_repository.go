package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
)

const collectionProducts = "products"

// ProductRepository implements ports.ProductRepository using MongoDB.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type mongoProduct struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Category string             `bson:"category"`
	Price    float64            `bson:"price"`
	Quantity int                `bson:"quantity"`
	Stock    int                `bson:"stock"`
	Sales    int                `bson:"sales"`
	Status   string             `bson:"status,omitempty"`
}

func fromProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Quantity: p.Quantity,
		Stock:    p.Stock,
		Sales:    p.Sales,
		Status:   p.Status,
	}
}

func (m mongoProduct) toDomain() domain.Product {
	return domain.Product{
		ID:       m.ID.Hex(),
		Name:     m.Name,
		Category: m.Category,
		Price:    m.Price,
		Quantity: m.Quantity,
		Stock:    m.Stock,
		Sales:    m.Sales,
		Status:   m.Status,
	}
}

func toProducts(docs []mongoProduct) []domain.Product {
	out := make([]domain.Product, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func productObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.InvalidInput("malformed product id %q", id)
	}
	return oid, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromProduct(p))
	if err != nil {
		return "", fmt.Errorf("insert product: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, ps []domain.Product) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(ps))
	for i := range ps {
		docs[i] = fromProduct(&ps[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert products: %w", err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		oid, _ := raw.(primitive.ObjectID)
		ids = append(ids, oid.Hex())
	}
	return ids, nil
}

// buildFilter translates a ProductQuery into a MongoDB filter document.
func buildFilter(q ports.ProductQuery) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if q.NameContains != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.NameContains), "$options": "i"}
	}
	if q.StockBelow != nil {
		filter["stock"] = bson.M{"$lt": *q.StockBelow}
	}
	return filter
}

func (r *ProductRepository) Find(ctx context.Context, q ports.ProductQuery) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cur, err := r.col.Find(ctx, buildFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find products: decode: %w", err)
	}
	return toProducts(docs), nil
}

// buildUpdate turns a patch into a $set document holding only the supplied fields.
func buildUpdate(p domain.ProductPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.Stock != nil {
		set["stock"] = *p.Stock
	}
	if p.Sales != nil {
		set["sales"] = *p.Sales
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	return bson.M{"$set": set}
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (int64, int64, error) {
	oid, err := productObjectID(id)
	if err != nil {
		return 0, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, buildUpdate(patch))
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := productObjectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// aggregate runs pipeline and decodes every result document into out.
func (r *ProductRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

// TotalValue sums price*quantity over every product; 0 for an empty collection.
func (r *ProductRepository) TotalValue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"total": bson.M{"$multiply": bson.A{"$price", "$quantity"}}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total_inventory_value": bson.M{"$sum": "$total"}}}},
	}

	var rows []struct {
		Total float64 `bson:"total_inventory_value"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return 0, fmt.Errorf("total value: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}

	out := make([]domain.CategoryCount, len(rows))
	for i, row := range rows {
		out[i] = domain.CategoryCount{Category: row.Category, Count: row.Count}
	}
	return out, nil
}

func (r *ProductRepository) AveragePriceByCategory(ctx context.Context) ([]domain.CategoryAveragePrice, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "average_price": bson.M{"$avg": "$price"}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []struct {
		Category     string  `bson:"_id"`
		AveragePrice float64 `bson:"average_price"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("average price: %w", err)
	}

	out := make([]domain.CategoryAveragePrice, len(rows))
	for i, row := range rows {
		out[i] = domain.CategoryAveragePrice{Category: row.Category, AveragePrice: row.AveragePrice}
	}
	return out, nil
}

// TopSelling sums sales per product name, best sellers first.
func (r *ProductRepository) TopSelling(ctx context.Context) ([]domain.ProductSales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$name", "total_sales": bson.M{"$sum": "$sales"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_sales", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	var rows []struct {
		Name       string `bson:"_id"`
		TotalSales int64  `bson:"total_sales"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}

	out := make([]domain.ProductSales, len(rows))
	for i, row := range rows {
		out[i] = domain.ProductSales{Name: row.Name, TotalSales: row.TotalSales}
	}
	return out, nil
}

func (r *ProductRepository) GroupByCategory(ctx context.Context) ([]domain.CategoryGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "products": bson.M{"$push": "$$ROOT"}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []struct {
		Category string         `bson:"_id"`
		Products []mongoProduct `bson:"products"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("group by category: %w", err)
	}

	out := make([]domain.CategoryGroup, len(rows))
	for i, row := range rows {
		out[i] = domain.CategoryGroup{Category: row.Category, Products: toProducts(row.Products)}
	}
	return out, nil
}

// EnsureIndexes creates the name, category and status indexes used by search,
// category filters and stock reports.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure product indexes: %w", err)
	}
	return nil
}
