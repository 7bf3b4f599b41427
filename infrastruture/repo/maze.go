package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// MazeRepo handles the persistence of saved mazes.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the owner listing index.
func (r *MazeRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Save inserts or updates a maze in the repository.
func (r *MazeRepo) Save(ctx context.Context, m *domain.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": m.ID}
	update := bson.M{
		"$set": bson.M{
			"spec":      m.Spec,
			"rows":      m.Rows,
			"start":     m.Start,
			"end":       m.End,
			"ownerId":   m.OwnerID,
			"createdAt": m.CreatedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a maze by its ID.
// Returns domain.ErrMazeNotFound if the maze does not exist.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var m domain.Maze
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &m, nil
}

// ByOwner lists an owner's mazes, newest first.
func (r *MazeRepo) ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*domain.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": owner}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	mazes := []*domain.Maze{}
	if err := cursor.All(ctx, &mazes); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return mazes, nil
}
