package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"campus-food-backend/internal/domain"
	"campus-food-backend/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collStores        = "stores"
	collUsers         = "users"
	collReviews       = "reviews"
	collOrders        = "orders"
	collActiveUsers   = "active_users"
	collRegistrations = "store_registrations"
)

type MongoRepository struct {
	db  *mongo.Database
	ctx context.Context
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		db:  db,
		ctx: context.Background(),
	}
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes the query paths rely on. Safe to run
// on every startup.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	reviewIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "store_id", Value: 1}}},
		{Keys: bson.D{{Key: "item_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_name", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.db.Collection(collReviews).Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}

	activeIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "last_activity", Value: 1}}},
	}
	if _, err := r.db.Collection(collActiveUsers).Indexes().CreateMany(ctx, activeIndexes); err != nil {
		return fmt.Errorf("failed to create active_users indexes: %w", err)
	}

	storeIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "store_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.db.Collection(collStores).Indexes().CreateMany(ctx, storeIndexes); err != nil {
		return fmt.Errorf("failed to create store indexes: %w", err)
	}

	return nil
}

// ---- stores ----

func (r *MongoRepository) ListStores(openOnly *bool) ([]domain.Store, error) {
	filter := bson.M{}
	if openOnly != nil {
		filter["is_open"] = *openOnly
	}

	cursor, err := r.db.Collection(collStores).Find(r.ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.ctx)

	stores := []domain.Store{}
	for cursor.Next(r.ctx) {
		var doc storeDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		stores = append(stores, normalizeStore(doc))
	}
	return stores, cursor.Err()
}

func (r *MongoRepository) findStore(filter bson.M) (*storeDoc, error) {
	var doc storeDoc
	err := r.db.Collection(collStores).FindOne(r.ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: store", service.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *MongoRepository) GetStore(id int) (*domain.Store, error) {
	doc, err := r.findStore(bson.M{"id": id})
	if err != nil {
		return nil, err
	}
	store := normalizeStore(*doc)
	return &store, nil
}

func (r *MongoRepository) GetStoreByObjectID(hex string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: store", service.ErrNotFound)
	}
	doc, err := r.findStore(bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	store := normalizeStore(*doc)
	return &store, nil
}

func (r *MongoRepository) GetStoreByName(pattern string) (*domain.Store, error) {
	doc, err := r.findStore(bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}})
	if err != nil {
		return nil, err
	}
	store := normalizeStore(*doc)
	return &store, nil
}

func (r *MongoRepository) SetStoreStatus(id int, isOpen bool) error {
	result, err := r.db.Collection(collStores).UpdateOne(r.ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"is_open": isOpen, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: store %d", service.ErrNotFound, id)
	}
	return nil
}

func (r *MongoRepository) GetMenu(storeID int) ([]domain.MenuItem, error) {
	doc, err := r.findStore(bson.M{"id": storeID})
	if err != nil {
		return nil, err
	}
	return normalizeMenu(doc.Menu), nil
}

func (r *MongoRepository) SaveMenu(storeID int, menu []domain.MenuItem) error {
	result, err := r.db.Collection(collStores).UpdateOne(r.ctx,
		bson.M{"id": storeID},
		bson.M{"$set": bson.M{"menu": menuToDocs(menu), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: store %d", service.ErrNotFound, storeID)
	}
	return nil
}

func (r *MongoRepository) StoreExists(email, storeID, name string) (bool, error) {
	var clauses []bson.M
	if email != "" {
		clauses = append(clauses, bson.M{"email": email})
	}
	if storeID != "" {
		clauses = append(clauses, bson.M{"store_id": storeID})
	}
	if name != "" {
		clauses = append(clauses, bson.M{"name": name})
	}
	if len(clauses) == 0 {
		return false, nil
	}

	count, err := r.db.Collection(collStores).CountDocuments(r.ctx, bson.M{"$or": clauses})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoRepository) NextStoreID() (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})
	var doc storeDoc
	err := r.db.Collection(collStores).FindOne(r.ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.ID + 1, nil
}

func (r *MongoRepository) InsertStore(store domain.StoreCreate, hashedPassword string) (*domain.Store, error) {
	nextID, err := r.NextStoreID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	isOpen := true
	if store.IsOpen != nil {
		isOpen = *store.IsOpen
	}
	doc := storeDoc{
		ID:             nextID,
		Name:           store.Name,
		StoreID:        store.StoreID,
		Email:          store.Email,
		Phone:          store.Phone,
		HashedPassword: hashedPassword,
		Image:          store.Image,
		Rating:         &store.Rating,
		Tagline:        store.Tagline,
		Gradient:       store.Gradient,
		IsOpen:         &isOpen,
		Reviews:        store.Reviews,
		Menu:           []menuItemDoc{},
		Stats:          &statsDoc{AverageRating: store.Rating},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := r.db.Collection(collStores).InsertOne(r.ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.OID = result.InsertedID.(primitive.ObjectID)
	created := normalizeStore(doc)
	return &created, nil
}

// ---- credentials / registration ----

type credentialsDoc struct {
	Name           string `bson:"name"`
	HashedPassword string `bson:"hashed_password"`
	IsAdmin        bool   `bson:"is_admin"`
}

func (r *MongoRepository) credentials(coll string, filter bson.M) (*domain.Credentials, error) {
	var doc credentialsDoc
	err := r.db.Collection(coll).FindOne(r.ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: account", service.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &domain.Credentials{
		HashedPassword: doc.HashedPassword,
		IsAdmin:        doc.IsAdmin,
		StoreName:      doc.Name,
	}, nil
}

func (r *MongoRepository) AdminCredentials(username string) (*domain.Credentials, error) {
	return r.credentials(collUsers, bson.M{"username": username, "is_admin": true})
}

func (r *MongoRepository) StoreCredentials(slug string) (*domain.Credentials, error) {
	return r.credentials(collStores, bson.M{"store_id": slug})
}

func (r *MongoRepository) UserCredentials(username string) (*domain.Credentials, error) {
	return r.credentials(collUsers, bson.M{"username": username})
}

func (r *MongoRepository) UserExists(email, username string) (bool, error) {
	count, err := r.db.Collection(collUsers).CountDocuments(r.ctx, bson.M{
		"$or": []bson.M{{"email": email}, {"username": username}},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoRepository) InsertUser(user domain.UserCreate, hashedPassword string) (string, error) {
	result, err := r.db.Collection(collUsers).InsertOne(r.ctx, bson.M{
		"username":        user.Username,
		"email":           user.Email,
		"phone":           user.Phone,
		"hashed_password": hashedPassword,
		"is_admin":        false,
		"created_at":      time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoRepository) InsertRegistration(reg domain.StoreRegistrationCreate) (string, error) {
	result, err := r.db.Collection(collRegistrations).InsertOne(r.ctx, registrationDoc{
		StoreName: reg.StoreName,
		StoreID:   reg.StoreID,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoRepository) ListRegistrations() ([]domain.StoreRegistration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.db.Collection(collRegistrations).Find(r.ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.ctx)

	registrations := []domain.StoreRegistration{}
	for cursor.Next(r.ctx) {
		var doc registrationDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		registrations = append(registrations, normalizeRegistration(doc))
	}
	return registrations, cursor.Err()
}

// ---- reviews ----

func (r *MongoRepository) InsertReview(review *domain.Review) error {
	doc := reviewDoc{
		StoreID:    review.StoreID,
		StoreName:  review.StoreName,
		ItemID:     review.ItemID,
		ItemName:   review.ItemName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		UserName:   review.UserName,
		UserAvatar: review.UserAvatar,
		Status:     review.Status,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
	result, err := r.db.Collection(collReviews).InsertOne(r.ctx, doc)
	if err != nil {
		return err
	}
	review.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// Listing endpoints page at 100 reviews; rating rescans read deeper so
// the recomputed average covers the item's whole history.
const (
	listReviewsLimit   = 100
	rescanReviewsLimit = 1000
)

func (r *MongoRepository) listReviews(filter bson.M, limit int64) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.db.Collection(collReviews).Find(r.ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.ctx)

	reviews := []domain.Review{}
	for cursor.Next(r.ctx) {
		var doc reviewDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		reviews = append(reviews, normalizeReview(doc))
	}
	return reviews, cursor.Err()
}

func (r *MongoRepository) ListReviews(filter domain.ReviewFilter) ([]domain.Review, error) {
	query := bson.M{"status": domain.ReviewApproved}
	if filter.StoreID != 0 {
		query["store_id"] = filter.StoreID
	}
	if filter.ItemID != 0 {
		query["item_id"] = filter.ItemID
	}
	if filter.UserName != "" {
		query["user_name"] = filter.UserName
	}
	return r.listReviews(query, listReviewsLimit)
}

func (r *MongoRepository) ListApprovedItemReviews(storeID, itemID int) ([]domain.Review, error) {
	return r.listReviews(bson.M{
		"store_id": storeID,
		"item_id":  itemID,
		"status":   domain.ReviewApproved,
	}, rescanReviewsLimit)
}

func (r *MongoRepository) TopRatedItems(limit int) ([]domain.TopRatedItem, error) {
	cursor, err := r.db.Collection(collStores).Find(r.ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.ctx)

	var items []domain.TopRatedItem
	for cursor.Next(r.ctx) {
		var doc storeDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		for _, item := range normalizeMenu(doc.Menu) {
			if item.ReviewCount == 0 {
				continue
			}
			items = append(items, domain.TopRatedItem{
				StoreID:  doc.ID,
				ItemID:   item.ID,
				ItemName: item.Name,
				Rating:   item.Rating,
			})
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// ---- orders ----

func (r *MongoRepository) InsertOrder(order *domain.Order) error {
	result, err := r.db.Collection(collOrders).InsertOne(r.ctx, orderToDoc(*order))
	if err != nil {
		return err
	}
	order.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoRepository) GetOrder(orderID string) (*domain.Order, error) {
	var doc orderDoc
	err := r.db.Collection(collOrders).FindOne(r.ctx, bson.M{"order_id": orderID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: order %s", service.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	order := normalizeOrder(doc)
	return &order, nil
}

func (r *MongoRepository) ListOrders(filter domain.OrderFilter) ([]domain.Order, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.StoreID != 0 {
		query["items.store_id"] = filter.StoreID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100)
	cursor, err := r.db.Collection(collOrders).Find(r.ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.ctx)

	orders := []domain.Order{}
	for cursor.Next(r.ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		orders = append(orders, normalizeOrder(doc))
	}
	return orders, cursor.Err()
}

func (r *MongoRepository) SaveOrderStatus(orderID, status string, timeline []domain.TimelineEntry) error {
	entries := make([]timelineEntryDoc, 0, len(timeline))
	for _, entry := range timeline {
		entries = append(entries, timelineEntryDoc(entry))
	}

	result, err := r.db.Collection(collOrders).UpdateOne(r.ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{
			"status":     status,
			"timeline":   entries,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: order %s", service.ErrNotFound, orderID)
	}
	return nil
}

func (r *MongoRepository) SaveOrderQR(orderID string, png []byte) error {
	result, err := r.db.Collection(collOrders).UpdateOne(r.ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"qr_code": png}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: order %s", service.ErrNotFound, orderID)
	}
	return nil
}

func (r *MongoRepository) GetOrderQR(orderID string) ([]byte, error) {
	opts := options.FindOne().SetProjection(bson.M{"qr_code": 1})
	var doc orderDoc
	err := r.db.Collection(collOrders).FindOne(r.ctx, bson.M{"order_id": orderID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: order %s", service.ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return doc.QRCode, nil
}

// ---- presence ----

func (r *MongoRepository) UpsertActiveUser(user domain.ActiveUser) error {
	doc := activeUserDoc{
		UserID:       user.UserID,
		SessionID:    user.SessionID,
		IsOrdering:   user.IsOrdering,
		CurrentStore: user.CurrentStore,
		DeviceInfo:   deviceInfoDoc(user.DeviceInfo),
		Timestamp:    user.Timestamp,
		LastActivity: user.LastActivity,
	}
	_, err := r.db.Collection(collActiveUsers).UpdateOne(r.ctx,
		bson.M{"user_id": user.UserID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoRepository) MergeActivity(userID string, fields map[string]interface{}, lastActivity time.Time) error {
	update := bson.M{"last_activity": lastActivity}
	for key, value := range fields {
		update[key] = value
	}

	result, err := r.db.Collection(collActiveUsers).UpdateOne(r.ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: active user %s", service.ErrNotFound, userID)
	}
	return nil
}

func (r *MongoRepository) DeleteActiveUser(userID string) error {
	_, err := r.db.Collection(collActiveUsers).DeleteOne(r.ctx, bson.M{"user_id": userID})
	return err
}

func (r *MongoRepository) CountActive(since time.Time) (int, error) {
	count, err := r.db.Collection(collActiveUsers).CountDocuments(r.ctx, bson.M{
		"last_activity": bson.M{"$gte": since},
	})
	return int(count), err
}

func (r *MongoRepository) CountOrdering(since time.Time) (int, error) {
	count, err := r.db.Collection(collActiveUsers).CountDocuments(r.ctx, bson.M{
		"is_ordering":   true,
		"last_activity": bson.M{"$gte": since},
	})
	return int(count), err
}

func (r *MongoRepository) ListActive(since time.Time) ([]domain.ActiveUser, error) {
	cursor, err := r.db.Collection(collActiveUsers).Find(r.ctx, bson.M{
		"last_activity": bson.M{"$gte": since},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.ctx)

	users := []domain.ActiveUser{}
	for cursor.Next(r.ctx) {
		var doc activeUserDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		users = append(users, normalizeActiveUser(doc))
	}
	return users, cursor.Err()
}

var (
	_ service.StoreRepository    = (*MongoRepository)(nil)
	_ service.ReviewRepository   = (*MongoRepository)(nil)
	_ service.OrderRepository    = (*MongoRepository)(nil)
	_ service.PresenceRepository = (*MongoRepository)(nil)
)
