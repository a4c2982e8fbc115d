package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/interviewsim/interview-api/internal/core/domain"
)

const (
	usersCollection    = "users"
	adminsCollection   = "admins"
	countersCollection = "counters"

	userSequence = "user_id"
)

// UserRepository persists users and admins in MongoDB. Numeric ids come from
// the counters collection so the public contract keeps store-assigned
// integer ids.
type UserRepository struct {
	db     *mongo.Database
	users  *mongo.Collection
	admins *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		db:     db,
		users:  db.Collection(usersCollection),
		admins: db.Collection(adminsCollection),
	}
}

type mongoUser struct {
	ID         int64  `bson:"_id"`
	Name       string `bson:"name"`
	Email      string `bson:"email"`
	Password   string `bson:"password"`
	ResumePath string `bson:"resume_path"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:         mu.ID,
		Name:       mu.Name,
		Email:      mu.Email,
		Password:   mu.Password,
		ResumePath: mu.ResumePath,
		CreatedAt:  unixToTime(mu.CreatedAt),
		UpdatedAt:  unixToTime(mu.UpdatedAt),
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByIDAndEmail(ctx context.Context, id int64, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.users.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	cur, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := nextSequence(ctx, r.db, userSequence)
	if err != nil {
		return nil, err
	}

	doc := mongoUser{
		ID:         id,
		Name:       user.Name,
		Email:      user.Email,
		Password:   user.Password,
		ResumePath: user.ResumePath,
		CreatedAt:  user.CreatedAt.Unix(),
		UpdatedAt:  user.UpdatedAt.Unix(),
	}
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

// Update rewrites name, email and resume path; the password is only touched
// when the entity carries a non-empty one, so projection-based writes cannot
// clobber a stored hash.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	set := bson.M{
		"name":        user.Name,
		"email":       user.Email,
		"resume_path": user.ResumePath,
		"updated_at":  user.UpdatedAt.Unix(),
	}
	if user.Password != "" {
		set["password"] = user.Password
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ClearResumeURL blanks the resume path on any user still referencing the
// URL. Matching nothing is not an error.
func (r *UserRepository) ClearResumeURL(ctx context.Context, fileURL string) error {
	_, err := r.users.UpdateMany(ctx,
		bson.M{"resume_path": fileURL},
		bson.M{"$set": bson.M{"resume_path": "", "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("clear resume url: %w", err)
	}
	return nil
}

func (r *UserRepository) AllResumeURLs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.users, "resume_path")
}

// FindAdminByCredentials matches email and password exactly as stored. The
// comparison lives here on purpose: the service layer does not know or care
// whether admin passwords are hashed.
func (r *UserRepository) FindAdminByCredentials(ctx context.Context, email, password string) (*domain.Admin, error) {
	var doc struct {
		ID       int64  `bson:"_id"`
		Email    string `bson:"email"`
		Password string `bson:"password"`
	}
	err := r.admins.FindOne(ctx, bson.M{"email": email, "password": password}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &domain.Admin{ID: doc.ID, Email: doc.Email, Password: doc.Password}, nil
}

// distinctStrings returns the distinct non-empty values of a field.
func distinctStrings(ctx context.Context, coll *mongo.Collection, field string) ([]string, error) {
	raw, err := coll.Distinct(ctx, field, bson.M{field: bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	urls := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			urls = append(urls, s)
		}
	}
	return urls, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
