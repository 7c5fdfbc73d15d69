// Command seed loads listings from a JSON file into the store and makes sure
// the search index exists. Intended for local development and demo data.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gasit-app/gasit/internal/config"
	dbRedis "github.com/gasit-app/gasit/internal/db/redis"
	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	logpkg "github.com/gasit-app/gasit/internal/logger"
	listingrepo "github.com/gasit-app/gasit/internal/repository/listing"
)

const batchSize = 100

// seedListing is the JSON shape of one listing in the seed file.
type seedListing struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Lat          float64    `json:"lat"`
	Lon          float64    `json:"lon"`
	CircleRadius float64    `json:"circle_radius"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSeenAt   *time.Time `json:"last_seen_at"`
	PromoActive  bool       `json:"promo_active"`
	PromoExpires *time.Time `json:"promo_expires"`
	Images       []string   `json:"images"`
}

func main() {
	file := flag.String("file", "seed/listings.json", "path to the listings JSON file")
	flag.Parse()

	_ = godotenv.Load()
	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("Failed to read seed file", zap.String("file", *file), zap.Error(err))
	}

	var seeds []seedListing
	if err := json.Unmarshal(data, &seeds); err != nil {
		logger.Fatal("Failed to parse seed file", zap.Error(err))
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	repo := listingrepo.New(store)
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure listing index", zap.Error(err))
	}

	listings := make([]domlisting.Listing, 0, len(seeds))
	for i := range seeds {
		l, err := toListing(&seeds[i])
		if err != nil {
			logger.Fatal("Invalid seed listing",
				zap.String("id", seeds[i].ID), zap.Error(err))
		}
		listings = append(listings, l)
	}

	for start := 0; start < len(listings); start += batchSize {
		end := start + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := repo.PutMulti(ctx, listings[start:end]); err != nil {
			logger.Fatal("Failed to store batch", zap.Int("offset", start), zap.Error(err))
		}
	}

	logger.Info("Seed complete", zap.Int("listings", len(listings)))
}

func toListing(s *seedListing) (domlisting.Listing, error) {
	status := domlisting.Status(s.Status)
	if !status.IsValid() {
		return domlisting.Listing{}, fmt.Errorf("unknown status %q", s.Status)
	}

	var lastSeen time.Time
	if s.LastSeenAt != nil {
		lastSeen = *s.LastSeenAt
	}
	var promo domlisting.Promotion
	if s.PromoExpires != nil {
		promo = domlisting.NewPromotion(s.PromoActive, *s.PromoExpires)
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return domlisting.Reconstruct(
		s.ID, s.Title, s.Content, s.Category, status,
		domlisting.Point{Longitude: s.Lon, Latitude: s.Lat},
		s.CircleRadius, createdAt, lastSeen, promo, 0, s.Images,
	), nil
}
