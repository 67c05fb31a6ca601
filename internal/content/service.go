// Package content creates clothing items and outfit posts, including
// the tap-to-tag points that anchor garments to coordinates on an
// outfit image.
package content

import (
	"context"
	"encoding/json"
	"time"

	"github.com/supabase-community/postgrest-go"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/storage"
)

type Service struct {
	db       *db.Client
	uploader *storage.Uploader
}

func NewService(dbClient *db.Client, uploader *storage.Uploader) *Service {
	return &Service{db: dbClient, uploader: uploader}
}

// NewClothingItem is the payload for a brand's clothing upload. Clothes
// reference an existing image by URL; only outfits go through storage.
type NewClothingItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"image_url"`
}

// NewOutfitPoint is one tagged coordinate on the outfit image.
type NewOutfitPoint struct {
	XPosition      float64 `json:"x_position"`
	YPosition      float64 `json:"y_position"`
	ClothingItemID string  `json:"clothing_item_id,omitempty"`
}

// CreateClothingItem inserts a clothing row for the brand admin.
func (s *Service) CreateClothingItem(token, userID string, in NewClothingItem) (*models.ClothingItem, error) {
	row := map[string]any{
		"user_id":     userID,
		"title":       in.Title,
		"description": in.Description,
		"brand":       in.Brand,
		"category":    in.Category,
		"image_url":   in.ImageURL,
		"likes_count": 0,
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}

	resp, _, err := s.db.UserClient(token).
		From("clothing_items").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("creating clothing item", err)
	}

	var items []models.ClothingItem
	if err := json.Unmarshal(resp, &items); err != nil || len(items) == 0 {
		return nil, errs.DataAccess("decoding created clothing item", err)
	}
	return &items[0], nil
}

// CreateOutfitPost uploads the image, inserts the outfit row with the
// signed URL, then writes the tagged points. The steps are sequential;
// a failed upload means nothing is inserted.
func (s *Service) CreateOutfitPost(ctx context.Context, token, userID, title, description string, image []byte, contentType string, points []NewOutfitPoint) (*models.OutfitPost, error) {
	imageURL, err := s.uploader.Upload(ctx, image, contentType)
	if err != nil {
		return nil, err
	}

	row := map[string]any{
		"user_id":     userID,
		"title":       title,
		"description": description,
		"image_url":   imageURL,
		"likes_count": 0,
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	}

	resp, _, err := s.db.UserClient(token).
		From("outfit_posts").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("creating outfit post", err)
	}

	var posts []models.OutfitPost
	if err := json.Unmarshal(resp, &posts); err != nil || len(posts) == 0 {
		return nil, errs.DataAccess("decoding created outfit post", err)
	}
	post := &posts[0]

	if len(points) > 0 {
		rows := make([]models.OutfitPoint, 0, len(points))
		for i, p := range points {
			rows = append(rows, models.OutfitPoint{
				OutfitID:       post.ID,
				PointNumber:    i + 1,
				XPosition:      p.XPosition,
				YPosition:      p.YPosition,
				ClothingItemID: p.ClothingItemID,
			})
		}
		_, _, err := s.db.UserClient(token).
			From("outfit_points").
			Insert(rows, false, "", "", "").
			Execute()
		if err != nil {
			return nil, errs.DataAccess("creating outfit points", err)
		}
	}

	return post, nil
}

// OutfitPoints returns the tagged points for an outfit in tap order.
func (s *Service) OutfitPoints(token, outfitID string) ([]models.OutfitPoint, error) {
	resp, _, err := s.db.UserClient(token).
		From("outfit_points").
		Select("*", "", false).
		Eq("outfit_id", outfitID).
		Order("point_number", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching outfit points", err)
	}

	points := []models.OutfitPoint{}
	if err := json.Unmarshal(resp, &points); err != nil {
		return nil, errs.DataAccess("decoding outfit points", err)
	}
	return points, nil
}
