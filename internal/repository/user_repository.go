package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ewaste-admin-console/internal/model"
)

var ErrNotFound = errors.New("user not found")

// userDocument mirrors the marketplace's users collection. Field names
// follow the API's camelCase schema.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Email    string             `bson:"email"`
	FullName string             `bson:"fullName,omitempty"`
	Phone    string             `bson:"phone,omitempty"`
	City     string             `bson:"city,omitempty"`
	IsAdmin  bool               `bson:"isAdmin"`
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		FullName: d.FullName,
		Phone:    d.Phone,
		City:     d.City,
		IsAdmin:  d.IsAdmin,
	}
}

type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

func (m *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDocument
	err := m.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// SetAdmin writes the admin flag of the user with the given hex id.
func (m *MongoUserRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	res, err := m.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isAdmin": isAdmin}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
