package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

const collectionSubscriptions = "subscriptions"

type SubscriptionRepository struct {
	col *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{col: db.Collection(collectionSubscriptions)}
}

type subscriptionDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Description      string             `bson:"description,omitempty"`
	Price            string             `bson:"price"`
	Duration         string             `bson:"duration"`
	UserNumber       string             `bson:"userNumber"`
	SubscriptionType string             `bson:"subscriptionType"`
	Status           string             `bson:"subscriptionStatus"`
	Date             time.Time          `bson:"subscriptionDate"`
	Email            string             `bson:"email,omitempty"`
	Phone            string             `bson:"phone,omitempty"`
	Amount           int64              `bson:"subscriptionAmount,omitempty"`
	PaymentMethod    string             `bson:"subscriptionPaymentMethod,omitempty"`
	PaymentStatus    string             `bson:"subscriptionPaymentStatus,omitempty"`
	PaymentDate      *time.Time         `bson:"subscriptionPaymentDate,omitempty"`
	PaymentRef       string             `bson:"paymentRef,omitempty"`
}

func toSubscriptionDoc(s *domain.Subscription) subscriptionDoc {
	return subscriptionDoc{
		Name:             s.Name,
		Description:      s.Description,
		Price:            s.Price,
		Duration:         s.Duration,
		UserNumber:       s.UserNumber,
		SubscriptionType: string(s.SubscriptionType),
		Status:           string(s.Status),
		Date:             s.Date,
		Email:            s.Email,
		Phone:            s.Phone,
		Amount:           s.Amount,
		PaymentMethod:    s.PaymentMethod,
		PaymentStatus:    s.PaymentStatus,
		PaymentDate:      s.PaymentDate,
		PaymentRef:       s.PaymentRef,
	}
}

func (d subscriptionDoc) toDomain() *domain.Subscription {
	s := &domain.Subscription{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Description:      d.Description,
		Price:            d.Price,
		Duration:         d.Duration,
		UserNumber:       d.UserNumber,
		SubscriptionType: domain.SubscriptionType(d.SubscriptionType),
		Status:           domain.SubscriptionStatus(d.Status),
		Date:             d.Date.UTC(),
		Email:            d.Email,
		Phone:            d.Phone,
		Amount:           d.Amount,
		PaymentMethod:    d.PaymentMethod,
		PaymentStatus:    d.PaymentStatus,
		PaymentRef:       d.PaymentRef,
	}
	if d.PaymentDate != nil {
		t := d.PaymentDate.UTC()
		s.PaymentDate = &t
	}
	return s
}

// Create inserts a new subscription document and sets s.ID.
func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toSubscriptionDoc(s))
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id string) (*domain.Subscription, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc subscriptionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns one page, newest subscriptionDate first, plus the total count.
func (r *SubscriptionRepository) List(ctx context.Context, f ports.ListSubscriptionsFilter) ([]*domain.Subscription, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "subscriptionDate", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []subscriptionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode subscriptions: %w", err)
	}

	out := make([]*domain.Subscription, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

// Update replaces the stored document. Fields left empty on s, such as a
// cleared payment date, are dropped from the record.
func (r *SubscriptionRepository) Update(ctx context.Context, s *domain.Subscription) error {
	oid, ok := parseID(s.ID)
	if !ok {
		return domain.ErrSubscriptionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toSubscriptionDoc(s))
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// EnsureIndexes creates the listing index on the subscriptions collection.
func (r *SubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subscriptionDate", Value: -1}},
	})
	return err
}
