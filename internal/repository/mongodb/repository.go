package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/repository"
)

const (
	snapshotsCollection  = "stock_snapshots"
	countLogsCollection  = "daily_count_logs"
	checklistsCollection = "equipment_checklists"
	usersCollection      = "users"

	catalogDocID = "catalog"
	fleetDocID   = "fleet"
)

var (
	_ repository.StockRepository = (*MongoDBRepository)(nil)
	_ repository.UserRepository  = (*MongoDBRepository)(nil)
)

type catalogDocument struct {
	ID        string                 `bson:"_id"`
	Inventory []models.InventoryItem `bson:"inventory"`
	UpdatedAt time.Time              `bson:"updated_at"`
}

type fleetDocument struct {
	ID        string                    `bson:"_id"`
	Vehicles  []models.VehicleInventory `bson:"vehicles"`
	UpdatedAt time.Time                 `bson:"updated_at"`
}

// MongoDBRepository stores each collection snapshot as a single document and
// appends count logs and checklists to their own collections.
type MongoDBRepository struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

// helloResult is the part of the hello reply that tells the topology apart.
type helloResult struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}

// supportsTransactions reports whether the server is a replica set member or
// a mongos router. Standalone servers reject multi-document transactions.
func (h helloResult) supportsTransactions() bool {
	return h.SetName != "" || h.Msg == "isdbgrid"
}

// NewMongoDBRepository connects, pings and prepares indexes. Transactions are
// used only when requested and the server supports them; otherwise paired
// writes run sequentially. Transactions reports the mode in effect.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, transactions bool) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}

	if transactions {
		var hello helloResult
		if err := r.db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to read mongodb topology: %w", err)
		}
		r.transactions = hello.supportsTransactions()
	}

	if err := r.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return r, nil
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	byVehicle := mongo.IndexModel{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "timestamp", Value: -1}}}
	for _, coll := range []string{countLogsCollection, checklistsCollection} {
		if _, err := r.db.Collection(coll).Indexes().CreateOne(ctx, byVehicle); err != nil {
			return fmt.Errorf("failed to create %s index: %w", coll, err)
		}
	}
	return nil
}

// LoadStock reads both snapshot documents. Vehicle item references are not
// checked against the catalog.
func (r *MongoDBRepository) LoadStock(ctx context.Context) (models.StockSnapshot, bool, error) {
	coll := r.db.Collection(snapshotsCollection)
	var snapshot models.StockSnapshot
	found := false

	var catalog catalogDocument
	err := coll.FindOne(ctx, bson.M{"_id": catalogDocID}).Decode(&catalog)
	switch {
	case err == nil:
		snapshot.Inventory = catalog.Inventory
		found = true
	case !errors.Is(err, mongo.ErrNoDocuments):
		return models.StockSnapshot{}, false, fmt.Errorf("failed to load catalog: %w", err)
	}

	var fleet fleetDocument
	err = coll.FindOne(ctx, bson.M{"_id": fleetDocID}).Decode(&fleet)
	switch {
	case err == nil:
		snapshot.Vehicles = fleet.Vehicles
		found = true
	case !errors.Is(err, mongo.ErrNoDocuments):
		return models.StockSnapshot{}, false, fmt.Errorf("failed to load fleet: %w", err)
	}

	return snapshot, found, nil
}

// SaveStock replaces the catalog and fleet documents together.
func (r *MongoDBRepository) SaveStock(ctx context.Context, snapshot models.StockSnapshot) error {
	return r.inTransaction(ctx, func(ctx context.Context) error {
		if err := r.replaceCatalog(ctx, snapshot.Inventory); err != nil {
			return err
		}
		return r.replaceFleet(ctx, snapshot.Vehicles)
	})
}

// SaveCount inserts the count log and replaces the fleet document together.
func (r *MongoDBRepository) SaveCount(ctx context.Context, log models.DailyCountLog, vehicles []models.VehicleInventory) error {
	return r.inTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.db.Collection(countLogsCollection).InsertOne(ctx, log); err != nil {
			return fmt.Errorf("failed to insert count log: %w", err)
		}
		return r.replaceFleet(ctx, vehicles)
	})
}

// AppendChecklist inserts an equipment checklist.
func (r *MongoDBRepository) AppendChecklist(ctx context.Context, checklist models.EquipmentChecklist) error {
	if _, err := r.db.Collection(checklistsCollection).InsertOne(ctx, checklist); err != nil {
		return fmt.Errorf("failed to insert checklist: %w", err)
	}
	return nil
}

// ListCountLogs returns a vehicle's count logs, newest first.
func (r *MongoDBRepository) ListCountLogs(ctx context.Context, vehicleID string) ([]models.DailyCountLog, error) {
	out := make([]models.DailyCountLog, 0)
	if err := r.findByVehicle(ctx, countLogsCollection, vehicleID, &out); err != nil {
		return nil, fmt.Errorf("failed to list count logs: %w", err)
	}
	return out, nil
}

// ListChecklists returns a vehicle's checklists, newest first.
func (r *MongoDBRepository) ListChecklists(ctx context.Context, vehicleID string) ([]models.EquipmentChecklist, error) {
	out := make([]models.EquipmentChecklist, 0)
	if err := r.findByVehicle(ctx, checklistsCollection, vehicleID, &out); err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	return out, nil
}

// ListUsers returns every user.
func (r *MongoDBRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.db.Collection(usersCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindUserByUsername looks a user up by login name.
func (r *MongoDBRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user %s: %w", username, err)
	}
	return user, nil
}

// InsertUser adds a user; a taken username maps to repository.ErrDuplicate.
func (r *MongoDBRepository) InsertUser(ctx context.Context, user models.User) error {
	_, err := r.db.Collection(usersCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// DeleteUser removes a user by id.
func (r *MongoDBRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Transactions reports whether paired writes run in a multi-document transaction.
func (r *MongoDBRepository) Transactions() bool {
	return r.transactions
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.transactions {
		return fn(ctx)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongodb session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (r *MongoDBRepository) replaceCatalog(ctx context.Context, items []models.InventoryItem) error {
	if items == nil {
		items = []models.InventoryItem{}
	}
	doc := catalogDocument{ID: catalogDocID, Inventory: items, UpdatedAt: time.Now().UTC()}
	_, err := r.db.Collection(snapshotsCollection).ReplaceOne(ctx, bson.M{"_id": catalogDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) replaceFleet(ctx context.Context, vehicles []models.VehicleInventory) error {
	if vehicles == nil {
		vehicles = []models.VehicleInventory{}
	}
	doc := fleetDocument{ID: fleetDocID, Vehicles: vehicles, UpdatedAt: time.Now().UTC()}
	_, err := r.db.Collection(snapshotsCollection).ReplaceOne(ctx, bson.M{"_id": fleetDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save fleet: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) findByVehicle(ctx context.Context, collection, vehicleID string, out interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.db.Collection(collection).Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}
