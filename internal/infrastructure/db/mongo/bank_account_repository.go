package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BankAccountRepository implements ports.BankAccountRepository.
// Account documents are written by other back-office services; RIB uniqueness
// is not enforced here.
type BankAccountRepository struct {
	col *mongo.Collection
}

func NewBankAccountRepository(db *mongo.Database) *BankAccountRepository {
	return &BankAccountRepository{col: db.Collection(collectionBankAccounts)}
}

func (r *BankAccountRepository) ExistsByRIB(ctx context.Context, rib string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"rib": rib}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count bank accounts: %w", err)
	}
	return n > 0, nil
}
