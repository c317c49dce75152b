package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platewise/platewise-backend/internal/database"
	"github.com/platewise/platewise-backend/internal/models"
)

var (
	// ErrAlreadyExists is returned when signup hits a taken username.
	ErrAlreadyExists = errors.New("account already exists")
	// ErrNotFound is returned for operations against a missing account.
	ErrNotFound = errors.New("account not found")
)

// AccountStore is the persistence interface for account documents.
// The MongoDB implementation is AccountRepo; tests use the in-memory MockStore.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, username string) (*models.Account, error)
	SaveProfile(ctx context.Context, username string, profile *models.Profile) error
	AppendFeedback(ctx context.Context, username string, entry models.FeedbackEntry) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

type AccountRepo struct {
	collection *mongo.Collection
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		collection: database.DB.Collection("accounts"),
	}
}

// EnsureIndexes creates the unique username index the create-if-absent
// semantics of CreateAccount depend on. Called once at startup.
func (r *AccountRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateAccount inserts the account only if the username is free. The unique
// index makes the check-and-insert atomic: a concurrent signup with the same
// username surfaces as a duplicate-key error and the existing document is
// left unmodified.
func (r *AccountRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	account.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// GetAccount is a point lookup by username.
func (r *AccountRepo) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// SaveProfile updates only the mutable profile fields with a partial $set.
// username, password_hash and feedback never appear in the update document,
// so a profile save cannot clobber them regardless of what the caller sends.
func (r *AccountRepo) SaveProfile(ctx context.Context, username string, profile *models.Profile) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, bson.M{
		"$set": bson.M{
			"name":              profile.Name,
			"age":               profile.Age,
			"height_cm":         profile.HeightCm,
			"weight_kg":         profile.WeightKg,
			"country":           profile.Country,
			"cuisine":           profile.Cuisine,
			"food_availability": profile.FoodAvailability,
			"health_issues":     profile.HealthIssues,
			"goals":             profile.Goals,
			"updated_at":        time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendFeedback appends one entry to the feedback array with an atomic
// $push, so concurrent submissions never lose entries.
func (r *AccountRepo) AppendFeedback(ctx context.Context, username string, entry models.FeedbackEntry) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, bson.M{
		"$push": bson.M{"feedback": entry},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash. Only the password-change
// flow calls this.
func (r *AccountRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
