package repositories

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog/internal/database"
	"catalog/internal/metrics"
	"catalog/internal/models"
)

type mongoRepository[T any, PT models.Document[T]] struct {
	db         database.Service
	collection string
}

func newMongoRepository[T any, PT models.Document[T]](db database.Service, collection string) *mongoRepository[T, PT] {
	return &mongoRepository[T, PT]{db: db, collection: collection}
}

func (r *mongoRepository[T, PT]) coll() *mongo.Collection {
	return r.db.Database().Collection(r.collection)
}

// timer starts a query timer; the status is read when ObserveDuration runs.
func (r *mongoRepository[T, PT]) timer(queryType string, status *string) *prometheus.Timer {
	return prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		metrics.DBQueryDurationSeconds.WithLabelValues(queryType, r.collection, *status).Observe(v)
	}))
}

func (r *mongoRepository[T, PT]) failed(queryType string, status *string) {
	*status = "error"
	metrics.DBQueryErrorsTotal.WithLabelValues(queryType, r.collection).Inc()
}

func (r *mongoRepository[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	queryType := "findById"
	status := "success"
	defer r.timer(queryType, &status).ObserveDuration()

	var doc T
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			status = "not_found"
			return nil, ErrNotFound
		}
		r.failed(queryType, &status)
		return nil, fmt.Errorf("failed to find %s %q: %w", r.collection, id, err)
	}
	return &doc, nil
}

func (r *mongoRepository[T, PT]) FindAll(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		queryType := "findAll"
		status := "success"
		defer r.timer(queryType, &status).ObserveDuration()

		cursor, err := r.coll().Find(ctx, bson.M{})
		if err != nil {
			r.failed(queryType, &status)
			yield(nil, fmt.Errorf("error fetching %s documents: %w", r.collection, err))
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var doc T
			if err := cursor.Decode(&doc); err != nil {
				r.failed(queryType, &status)
				yield(nil, fmt.Errorf("error decoding %s document: %w", r.collection, err))
				return
			}
			if !yield(&doc, nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			r.failed(queryType, &status)
			yield(nil, fmt.Errorf("error iterating %s documents: %w", r.collection, err))
		}
	}
}

func (r *mongoRepository[T, PT]) Save(ctx context.Context, entity *T) (*T, error) {
	queryType := "save"
	status := "success"
	defer r.timer(queryType, &status).ObserveDuration()

	doc := PT(entity)
	if doc.GetID() == "" {
		doc.SetID(uuid.NewString())
	}

	opts := options.Replace().SetUpsert(true)
	result, err := r.coll().ReplaceOne(ctx, bson.M{"_id": doc.GetID()}, entity, opts)
	if err != nil {
		r.failed(queryType, &status)
		log.Error().Err(err).Str("collection", r.collection).Str("id", doc.GetID()).Msg("Failed to save document")
		return nil, fmt.Errorf("failed to save %s: %w", r.collection, err)
	}
	log.Debug().Str("collection", r.collection).Str("id", doc.GetID()).Bool("inserted", result.UpsertedCount > 0).Msg("Document saved")
	return entity, nil
}

func (r *mongoRepository[T, PT]) SaveAll(ctx context.Context, entities iter.Seq2[*T, error]) iter.Seq2[*T, error] {
	return saveAll(ctx, entities, r.Save)
}

func (r *mongoRepository[T, PT]) Count(ctx context.Context) (int64, error) {
	queryType := "count"
	status := "success"
	defer r.timer(queryType, &status).ObserveDuration()

	count, err := r.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		r.failed(queryType, &status)
		return 0, fmt.Errorf("failed to count %s documents: %w", r.collection, err)
	}
	return count, nil
}
