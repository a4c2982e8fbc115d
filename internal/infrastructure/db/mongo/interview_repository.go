package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const interviewsCollection = "interviews"

// InterviewRepository covers the slice of interview persistence the account
// service needs: report-path cleanup and batch listing.
type InterviewRepository struct {
	coll *mongo.Collection
}

func NewInterviewRepository(db *mongo.Database) *InterviewRepository {
	return &InterviewRepository{coll: db.Collection(interviewsCollection)}
}

// ClearReportURL blanks the report path on any interview referencing the
// URL. Matching nothing is not an error.
func (r *InterviewRepository) ClearReportURL(ctx context.Context, fileURL string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"report_path": fileURL},
		bson.M{"$set": bson.M{"report_path": "", "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("clear report url: %w", err)
	}
	return nil
}

func (r *InterviewRepository) AllReportURLs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.coll, "report_path")
}
