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
)

const collectionUsers = "users"

type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionUsers)}
}

type accountDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	Password           string             `bson:"password"`
	Name               string             `bson:"name,omitempty"`
	Phone              string             `bson:"phone,omitempty"`
	Role               string             `bson:"role"`
	UserType           string             `bson:"userType"`
	IsVerified         bool               `bson:"isVerified"`
	IsAuthor           string             `bson:"isAuthor,omitempty"`
	Country            string             `bson:"country,omitempty"`
	City               string             `bson:"city,omitempty"`
	District           string             `bson:"district,omitempty"`
	Sector             string             `bson:"sector,omitempty"`
	Cell               string             `bson:"cell,omitempty"`
	NationalID         string             `bson:"nationalID,omitempty"`
	RegistrationNumber string             `bson:"registrationNumber,omitempty"`
	ContactPerson      string             `bson:"contactPerson,omitempty"`
	Industry           string             `bson:"industry,omitempty"`
	Category           string             `bson:"category,omitempty"`
	Photo              string             `bson:"photo,omitempty"`
	Documents          []string           `bson:"documents,omitempty"`
	OTP                string             `bson:"otp,omitempty"`
	OTPExpires         *time.Time         `bson:"otpExpires,omitempty"`
	Date               time.Time          `bson:"date"`
	LastLogin          time.Time          `bson:"lastLogin"`
}

func toAccountDoc(a *domain.Account) accountDoc {
	doc := accountDoc{
		Email:              a.Email,
		Password:           a.PasswordHash,
		Name:               a.Name,
		Phone:              a.Phone,
		Role:               a.Role,
		UserType:           string(a.UserType),
		IsVerified:         a.IsVerified,
		IsAuthor:           string(a.IsAuthor),
		Country:            a.Country,
		City:               a.City,
		District:           a.District,
		Sector:             a.Sector,
		Cell:               a.Cell,
		NationalID:         a.NationalID,
		RegistrationNumber: a.RegistrationNumber,
		ContactPerson:      a.ContactPerson,
		Industry:           a.Industry,
		Category:           a.Category,
		Photo:              a.Photo,
		Documents:          a.Documents,
		OTP:                a.OTPHash,
		Date:               a.CreatedAt,
		LastLogin:          a.LastLogin,
	}
	if a.HasPendingReset() {
		exp := a.OTPExpiresAt
		doc.OTPExpires = &exp
	}
	return doc
}

func (d accountDoc) toDomain() *domain.Account {
	a := &domain.Account{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Name:         d.Name,
		Phone:        d.Phone,
		Role:         d.Role,
		UserType:     domain.UserType(d.UserType),
		IsVerified:   d.IsVerified,
		IsAuthor:     domain.AuthorStatus(d.IsAuthor),
		Address: domain.Address{
			Country:  d.Country,
			City:     d.City,
			District: d.District,
			Sector:   d.Sector,
			Cell:     d.Cell,
		},
		NationalID:         d.NationalID,
		RegistrationNumber: d.RegistrationNumber,
		ContactPerson:      d.ContactPerson,
		Industry:           d.Industry,
		Category:           d.Category,
		Photo:              d.Photo,
		Documents:          d.Documents,
		OTPHash:            d.OTP,
		CreatedAt:          d.Date.UTC(),
		LastLogin:          d.LastLogin.UTC(),
	}
	if d.OTPExpires != nil {
		a.OTPExpiresAt = d.OTPExpires.UTC()
	}
	return a
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toAccountDoc(a))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every account, newest first.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	out := make([]*domain.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// credentialFields are never written by Update.
var credentialFields = []string{"password", "otp", "otpExpires", "lastLogin"}

// profileSet is the $set document for Update: every stored field except
// the credentials.
func profileSet(a *domain.Account) (bson.M, error) {
	raw, err := bson.Marshal(toAccountDoc(a))
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	for _, k := range credentialFields {
		delete(set, k)
	}
	return set, nil
}

// Update writes the profile fields with $set.
func (r *AccountRepository) Update(ctx context.Context, a *domain.Account) error {
	set, err := profileSet(a)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	matched, err := r.updateOne(ctx, a.ID, nil, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	matched, err := r.updateOne(ctx, id, nil, bson.M{"$set": bson.M{"lastLogin": at}})
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	matched, err := r.updateOne(ctx, id, nil, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetResetCode(ctx context.Context, id, digest string, expiresAt time.Time) error {
	matched, err := r.updateOne(ctx, id, nil, bson.M{"$set": bson.M{"otp": digest, "otpExpires": expiresAt}})
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ConsumeResetCode matches on the stored digest so two resets racing on
// the same code cannot both succeed.
func (r *AccountRepository) ConsumeResetCode(ctx context.Context, id, digest, passwordHash string) error {
	if digest == "" {
		return domain.ErrInvalidOTP
	}
	matched, err := r.updateOne(ctx, id, bson.M{"otp": digest}, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"otp": "", "otpExpires": ""},
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrInvalidOTP
	}
	return nil
}

// updateOne applies update to the account with the given id and any extra
// filter conditions, returning the matched count. An invalid id matches
// nothing.
func (r *AccountRepository) updateOne(ctx context.Context, id string, extra bson.M, update bson.M) (int64, error) {
	oid, ok := parseID(id)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	for k, v := range extra {
		filter[k] = v
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, domain.ErrAccountExists
		}
		return 0, fmt.Errorf("update account: %w", err)
	}
	return res.MatchedCount, nil
}

// Delete removes the account and returns the record as it was.
func (r *AccountRepository) Delete(ctx context.Context, id string) (*domain.Account, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("delete account: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique email index on the users collection.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
