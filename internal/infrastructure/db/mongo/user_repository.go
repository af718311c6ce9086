package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ebank/backoffice/internal/core/domain"
)

// UserRepository implements ports.UserRepository on the users and roles collections.
type UserRepository struct {
	users *mongo.Collection
	roles *RoleRepository
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users: db.Collection(collectionUsers),
		roles: NewRoleRepository(db),
	}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Login        string             `bson:"login"`
	PasswordHash string             `bson:"password_hash"`
	Enabled      bool               `bson:"enabled"`
	RoleID       primitive.ObjectID `bson:"role_id"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roleID, err := primitive.ObjectIDFromHex(user.Role.ID)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	doc := mongoUser{
		Login:        user.Login,
		PasswordHash: user.PasswordHash,
		Enabled:      user.Enabled,
		RoleID:       roleID,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByLogin loads the user and resolves its role reference.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"login": login}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	role, err := r.roles.findByID(ctx, mu.RoleID)
	if err != nil {
		return nil, fmt.Errorf("resolve role of %q: %w", login, err)
	}

	return toDomainUser(mu, *role), nil
}

// UpdatePassword sets password_hash and updated_at of one user. Enabled flag
// and role are not written, so concurrent administrative changes survive.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, digest string, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, passwordUpdate(digest, updatedAt))
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func passwordUpdate(digest string, updatedAt time.Time) bson.M {
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	return bson.M{
		"$set": bson.M{
			"password_hash": digest,
			"updated_at":    updatedAt.Unix(),
		},
	}
}

func toDomainUser(mu mongoUser, role domain.Role) *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Login:        mu.Login,
		PasswordHash: mu.PasswordHash,
		Enabled:      mu.Enabled,
		Role:         role,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
