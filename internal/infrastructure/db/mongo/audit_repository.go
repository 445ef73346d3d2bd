package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

const auditCollection = "audit_trail"

// AuditRepository appends console actions to the audit collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	Actor      string `bson:"actor"`
	Role       string `bson:"role"`
	Action     string `bson:"action"`
	Resource   string `bson:"resource"`
	ResourceID string `bson:"resource_id,omitempty"`
	At         int64  `bson:"at"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	doc := mongoAuditEntry{
		Actor:      entry.Actor,
		Role:       entry.Role,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		At:         entry.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
