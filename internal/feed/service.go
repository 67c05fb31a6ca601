// Package feed runs the content queries behind the home, search and
// profile screens. All reads go straight to the backend tables; nothing
// is cached client-side.
package feed

import (
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

const feedLimit = 20

type Service struct {
	db *db.Client
}

func NewService(dbClient *db.Client) *Service {
	return &Service{db: dbClient}
}

// Clothes returns the newest clothing items.
func (s *Service) Clothes(token string) ([]models.ClothingItem, error) {
	resp, _, err := s.db.UserClient(token).
		From("clothing_items").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(feedLimit, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching clothes feed", err)
	}

	items := []models.ClothingItem{}
	if err := json.Unmarshal(resp, &items); err != nil {
		return nil, errs.DataAccess("decoding clothes feed", err)
	}
	return items, nil
}

// Outfits returns the newest outfit posts.
func (s *Service) Outfits(token string) ([]models.OutfitPost, error) {
	resp, _, err := s.db.UserClient(token).
		From("outfit_posts").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(feedLimit, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching outfits feed", err)
	}

	posts := []models.OutfitPost{}
	if err := json.Unmarshal(resp, &posts); err != nil {
		return nil, errs.DataAccess("decoding outfits feed", err)
	}
	return posts, nil
}

// Filter narrows a search to one result type.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterClothes Filter = "clothes"
	FilterOutfits Filter = "outfits"
	FilterBrands  Filter = "brands"
)

func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterClothes, FilterOutfits, FilterBrands:
		return Filter(s)
	}
	return FilterAll
}

// Search matches titles (brand names for the brand filter) with a
// case-insensitive contains query.
func (s *Service) Search(token, query string, filter Filter) ([]models.SearchResult, error) {
	pattern := "%" + query + "%"
	results := []models.SearchResult{}

	if filter == FilterAll || filter == FilterClothes {
		items, err := s.searchClothes(token, pattern)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	if filter == FilterAll || filter == FilterOutfits {
		items, err := s.searchOutfits(token, pattern)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	if filter == FilterBrands {
		items, err := s.searchBrands(token, pattern)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}

	return results, nil
}

func (s *Service) searchClothes(token, pattern string) ([]models.SearchResult, error) {
	resp, _, err := s.db.UserClient(token).
		From("clothing_items").
		Select("*", "", false).
		Ilike("title", pattern).
		Limit(feedLimit, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("searching clothes", err)
	}

	var items []models.ClothingItem
	if err := json.Unmarshal(resp, &items); err != nil {
		return nil, errs.DataAccess("decoding clothes search", err)
	}

	results := make([]models.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, models.SearchResult{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Type:     "clothes",
			Subtitle: item.Brand,
		})
	}
	return results, nil
}

func (s *Service) searchOutfits(token, pattern string) ([]models.SearchResult, error) {
	resp, _, err := s.db.UserClient(token).
		From("outfit_posts").
		Select("*", "", false).
		Ilike("title", pattern).
		Limit(feedLimit, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("searching outfits", err)
	}

	var posts []models.OutfitPost
	if err := json.Unmarshal(resp, &posts); err != nil {
		return nil, errs.DataAccess("decoding outfits search", err)
	}

	results := make([]models.SearchResult, 0, len(posts))
	for _, post := range posts {
		results = append(results, models.SearchResult{
			ID:       post.ID,
			Title:    post.Title,
			ImageURL: post.ImageURL,
			Type:     "outfit",
			Subtitle: post.UserID,
		})
	}
	return results, nil
}

func (s *Service) searchBrands(token, pattern string) ([]models.SearchResult, error) {
	resp, _, err := s.db.UserClient(token).
		From("brands").
		Select("*", "", false).
		Ilike("name", pattern).
		Limit(feedLimit, "").
		Execute()
	if err != nil {
		return nil, errs.DataAccess("searching brands", err)
	}

	var brands []models.BrandInfo
	if err := json.Unmarshal(resp, &brands); err != nil {
		return nil, errs.DataAccess("decoding brands search", err)
	}

	results := make([]models.SearchResult, 0, len(brands))
	for _, brand := range brands {
		results = append(results, models.SearchResult{
			ID:       brand.ID,
			Title:    brand.Name,
			Type:     "brand",
			Subtitle: brand.Website,
		})
	}
	return results, nil
}

// SavedClothes returns the clothing items the user has liked, joined
// through the like table.
func (s *Service) SavedClothes(token, userID string) ([]models.SavedItem, error) {
	return s.saved(token, userID, "clothing_likes", "clothing_items")
}

// SavedOutfits returns the outfit posts the user has liked.
func (s *Service) SavedOutfits(token, userID string) ([]models.SavedItem, error) {
	return s.saved(token, userID, "outfit_likes", "outfit_posts")
}

func (s *Service) saved(token, userID, likeTable, itemTable string) ([]models.SavedItem, error) {
	resp, _, err := s.db.UserClient(token).
		From(likeTable).
		Select("*, "+itemTable+"(id, image_url, title, created_at)", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching saved items", err)
	}

	// Each like row embeds its item under the joined table's name.
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, errs.DataAccess("decoding saved items", err)
	}

	items := make([]models.SavedItem, 0, len(rows))
	for _, row := range rows {
		raw, ok := row[itemTable]
		if !ok {
			continue
		}
		var item models.SavedItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if item.ID != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

// Uploads returns everything the user has uploaded, both kinds.
func (s *Service) Uploads(token, userID string) ([]models.SavedItem, error) {
	clothes, err := s.uploadsFrom(token, userID, "clothing_items")
	if err != nil {
		return nil, err
	}
	outfits, err := s.uploadsFrom(token, userID, "outfit_posts")
	if err != nil {
		return nil, err
	}
	return append(clothes, outfits...), nil
}

func (s *Service) uploadsFrom(token, userID, table string) ([]models.SavedItem, error) {
	resp, _, err := s.db.UserClient(token).
		From(table).
		Select("id, image_url, title, created_at", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, errs.DataAccess("fetching uploads", err)
	}

	items := []models.SavedItem{}
	if err := json.Unmarshal(resp, &items); err != nil {
		return nil, errs.DataAccess("decoding uploads", err)
	}
	return items, nil
}
