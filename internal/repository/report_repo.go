package repository

import (
	"context"
	"time"
	"transparency/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type reportDoc struct {
	ID        string    `bson:"_id"`
	ProductID string    `bson:"productId,omitempty"`
	UserID    string    `bson:"userId,omitempty"`
	Report    bson.M    `bson:"report"`
	CreatedAt time.Time `bson:"createdAt"`
}

type reportRepo struct {
	reports *mongo.Collection
}

// NewReportRepo creates a MongoDB report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		reports: db.Collection("reports"),
	}
}

func (r *reportRepo) Create(ctx context.Context, report *model.ReportRecord) (string, error) {
	body, err := toBSON(report.Report)
	if err != nil {
		return "", err
	}
	if report.ID == "" {
		report.ID = primitive.NewObjectID().Hex()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	_, err = r.reports.InsertOne(ctx, reportDoc{
		ID:        report.ID,
		ProductID: report.ProductID,
		UserID:    report.UserID,
		Report:    body,
		CreatedAt: report.CreatedAt,
	})
	if err != nil {
		return "", err
	}
	return report.ID, nil
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.ReportRecord, error) {
	var doc reportDoc
	err := r.reports.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report model.TransparencyReport
	if err := fromBSON(doc.Report, &report); err != nil {
		return nil, err
	}
	return &model.ReportRecord{
		ID:        doc.ID,
		ProductID: doc.ProductID,
		UserID:    doc.UserID,
		Report:    &report,
		CreatedAt: doc.CreatedAt,
	}, nil
}
