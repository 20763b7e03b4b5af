package repository

import (
	"context"
	"encoding/json"
	"time"
	"transparency/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDoc struct {
	ID                string    `bson:"_id"`
	UserID            string    `bson:"userId"`
	Name              string    `bson:"name"`
	Brand             string    `bson:"brand"`
	Category          string    `bson:"category"`
	Description       string    `bson:"description"`
	Data              bson.M    `bson:"data"`
	TransparencyScore int       `bson:"transparencyScore"`
	CreatedAt         time.Time `bson:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt"`
}

type productRepo struct {
	collection *mongo.Collection
}

// NewProductRepo creates a MongoDB product repository
func NewProductRepo(db *mongo.Database) ProductRepo {
	return &productRepo{
		collection: db.Collection("products"),
	}
}

func (r *productRepo) Create(ctx context.Context, product *model.ProductRecord) (string, error) {
	data, err := toBSON(product.Data)
	if err != nil {
		return "", err
	}
	if product.ID == "" {
		product.ID = primitive.NewObjectID().Hex()
	}

	doc := productDoc{
		ID:                product.ID,
		UserID:            product.UserID,
		Name:              product.Name,
		Brand:             product.Brand,
		Category:          product.Category,
		Description:       product.Description,
		Data:              data,
		TransparencyScore: product.TransparencyScore,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return product.ID, nil
}

func (r *productRepo) GetByID(ctx context.Context, userID, id string) (*model.ProductRecord, error) {
	var doc productDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.record()
}

func (r *productRepo) ListByUser(ctx context.Context, userID string) ([]*model.ProductRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]*model.ProductRecord, 0, len(docs))
	for _, d := range docs {
		p, err := d.record()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (d productDoc) record() (*model.ProductRecord, error) {
	var data model.ProductData
	if err := fromBSON(d.Data, &data); err != nil {
		return nil, err
	}
	return &model.ProductRecord{
		ID:                d.ID,
		UserID:            d.UserID,
		Name:              d.Name,
		Brand:             d.Brand,
		Category:          d.Category,
		Description:       d.Description,
		Data:              data,
		TransparencyScore: d.TransparencyScore,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

// toBSON and fromBSON go through JSON so answers come back as plain
// strings, bools, float64s and []any rather than driver types.
func toBSON(v any) (bson.M, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromBSON(m bson.M, v any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
