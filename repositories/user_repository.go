package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/config"
	"github.com/matdaan/matdaan_backend/models"
)

// UserRepository is the single table the application touches: voter records
// keyed by phone number or row id.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(db, "users"),
	}
}

// InsertUser creates the voter record and returns the new row id. Satisfies
// registration.UserInserter.
func (r *UserRepository) InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.ObjectID{}, err
	}
	return user.ID, nil
}

// FindByPhone looks one voter up by the natural key.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID looks one voter up by row id.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkPhoneVerified flips the verification flag after a successful OTP check.
func (r *UserRepository) MarkPhoneVerified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"phoneVerified": true,
			"emailVerified": false, // email verification is a separate step
			"updatedAt":     time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// SetResetToken attaches a one-hour password-reset token to the account.
func (r *UserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiresAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"resetPasswordToken":  token,
			"resetTokenExpiresAt": expiresAt,
			"updatedAt":           time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// UpdatePassword stores the new hash and clears any reset token.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	update := bson.M{
		"$set": bson.M{
			"password":  passwordHash,
			"updatedAt": time.Now(),
		},
		"$unset": bson.M{
			"resetPasswordToken":  "",
			"resetTokenExpiresAt": "",
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
