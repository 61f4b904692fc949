package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type DailySales struct {
	Day        string `json:"day" bson:"_id"`
	Orders     int    `json:"orders" bson:"orders"`
	Units      int    `json:"units" bson:"units"`
	TotalCents int64  `json:"total_cents" bson:"total_cents"`
}

type TopBook struct {
	Title        string `json:"title" bson:"_id"`
	Units        int    `json:"units" bson:"units"`
	RevenueCents int64  `json:"revenue_cents" bson:"revenue_cents"`
}

type SalesAnalytics struct {
	Since    time.Time    `json:"since"`
	Daily    []DailySales `json:"daily"`
	TopBooks []TopBook    `json:"top_books"`
}

// GetSalesAnalytics aggregates confirmed orders into per-day revenue and the
// best-selling titles over the trailing window.
func GetSalesAnalytics(ctx context.Context, days int) (*SalesAnalytics, error) {
	since := time.Now().AddDate(0, 0, -days)
	collection := GetCollection("orders")

	dailyPipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
			}}}},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "units", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}}}},
			{Key: "total_cents", Value: bson.D{{Key: "$sum", Value: "$total_cents"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := collection.Aggregate(ctx, dailyPipeline)
	if err != nil {
		return nil, err
	}
	var daily []DailySales
	if err := cursor.All(ctx, &daily); err != nil {
		return nil, err
	}

	topPipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$items.book_title"},
			{Key: "units", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
			{Key: "revenue_cents", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$items.price_at_purchase_cents", "$items.quantity"}},
			}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "units", Value: -1}}}},
		bson.D{{Key: "$limit", Value: 10}},
	}

	cursor, err = collection.Aggregate(ctx, topPipeline)
	if err != nil {
		return nil, err
	}
	var top []TopBook
	if err := cursor.All(ctx, &top); err != nil {
		return nil, err
	}

	return &SalesAnalytics{Since: since, Daily: daily, TopBooks: top}, nil
}

type LowStockBook struct {
	Title         string `json:"title" bson:"title"`
	Author        string `json:"author" bson:"author"`
	ISBN          string `json:"isbn" bson:"isbn"`
	StockQuantity int    `json:"stock_quantity" bson:"stock_quantity"`
}

// GetLowStockBooks lists titles at or below the given stock threshold,
// lowest stock first.
func GetLowStockBooks(ctx context.Context, threshold int) ([]LowStockBook, error) {
	collection := GetCollection("books")

	cursor, err := collection.Find(ctx,
		bson.D{{Key: "stock_quantity", Value: bson.D{{Key: "$lte", Value: threshold}}}},
		options.Find().SetSort(bson.D{{Key: "stock_quantity", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var books []LowStockBook
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}
