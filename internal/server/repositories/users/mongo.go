package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/dmitrijs2005/gophfav/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoUser is the document layout of the users collection.
type mongoUser struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserName   string             `bson:"userName"`
	Password   string             `bson:"password"`
	Favourites []string           `bson:"favourites"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *mongoUser) toModel() *models.User {
	favourites := d.Favourites
	if favourites == nil {
		favourites = []string{}
	}
	return &models.User{
		ID:           d.ID.Hex(),
		UserName:     d.UserName,
		PasswordHash: d.Password,
		Favourites:   favourites,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoRepository stores one document per user. Favourites are changed with
// $addToSet / $pull inside FindOneAndUpdate, so concurrent requests for the
// same user never lose updates.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the unique index on userName that Create relies on.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userName", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("userName_unique"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := mongoUser{
		ID:         primitive.NewObjectID(),
		UserName:   user.UserName,
		Password:   user.PasswordHash,
		Favourites: []string{},
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"userName": userName}).Decode(&doc); err != nil {
		return nil, notFoundOr(err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) GetFavourites(ctx context.Context, userID string) ([]string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	var doc mongoUser
	opts := options.FindOne().SetProjection(bson.M{"favourites": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc); err != nil {
		return nil, notFoundOr(err)
	}
	return doc.toModel().Favourites, nil
}

func (r *MongoRepository) AddFavourite(ctx context.Context, userID, itemID string, limit int) ([]string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	// matches when the item is already there or the array still has room;
	// "favourites.<limit-1>" exists only once the array holds limit items
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"favourites": itemID},
			bson.M{"favourites." + strconv.Itoa(limit-1): bson.M{"$exists": false}},
		},
	}
	update := bson.M{"$addToSet": bson.M{"favourites": itemID}}

	favourites, err := r.updateFavourites(ctx, filter, update)
	if !errors.Is(err, common.ErrorNotFound) {
		return favourites, err
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n > 0 {
		return nil, common.ErrFavouritesLimit
	}
	return nil, common.ErrorNotFound
}

func (r *MongoRepository) RemoveFavourite(ctx context.Context, userID, itemID string) ([]string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	return r.updateFavourites(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"favourites": itemID}})
}

func (r *MongoRepository) updateFavourites(ctx context.Context, filter, update bson.M) ([]string, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"favourites": 1})

	var doc mongoUser
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, notFoundOr(err)
	}
	return doc.toModel().Favourites, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
