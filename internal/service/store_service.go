package service

import (
	"fmt"
	"strconv"
	"strings"

	"campus-food-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type StoreService struct {
	repo StoreRepository
}

func NewStoreService(repo StoreRepository) *StoreService {
	return &StoreService{repo: repo}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login checks admin, then store, then regular user credentials, in that
// order. Store logins match the slug against the lowercased, despaced
// username.
func (s *StoreService) Login(req domain.LoginRequest) (*domain.LoginResponse, error) {
	slug := strings.ReplaceAll(strings.ToLower(req.Username), " ", "")

	if admin, err := s.repo.AdminCredentials(req.Username); err == nil && admin != nil {
		if verifyPassword(req.Password, admin.HashedPassword) {
			return &domain.LoginResponse{
				Success: true,
				IsAdmin: true,
				Message: "Admin login successful",
			}, nil
		}
	}

	if store, err := s.repo.StoreCredentials(slug); err == nil && store != nil {
		if verifyPassword(req.Password, store.HashedPassword) {
			return &domain.LoginResponse{
				Success:   true,
				StoreName: store.StoreName,
				Message:   "Store login successful",
			}, nil
		}
	}

	if req.Username != "" && req.Password != "" {
		if user, err := s.repo.UserCredentials(req.Username); err == nil && user != nil {
			if verifyPassword(req.Password, user.HashedPassword) {
				return &domain.LoginResponse{
					Success: true,
					Message: "User login successful",
				}, nil
			}
		}
	}

	return nil, ErrUnauthorized
}

func (s *StoreService) RegisterUser(req domain.UserCreate) (string, error) {
	exists, err := s.repo.UserExists(req.Email, req.Username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: user with this email or username", ErrConflict)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.InsertUser(req, hash)
}

func (s *StoreService) RegisterStore(req domain.StoreRegistrationCreate) (string, error) {
	if req.Password != req.ConfirmPassword {
		return "", fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}

	exists, err := s.repo.StoreExists(req.Email, req.StoreID, "")
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: store with this email or store ID", ErrConflict)
	}

	return s.repo.InsertRegistration(req)
}

func (s *StoreService) List(openOnly *bool) ([]domain.Store, error) {
	return s.repo.ListStores(openOnly)
}

// Get resolves either the numeric store id or a raw ObjectID hex.
func (s *StoreService) Get(id string) (*domain.Store, error) {
	if numeric, err := strconv.Atoi(id); err == nil {
		return s.repo.GetStore(numeric)
	}
	return s.repo.GetStoreByObjectID(id)
}

func (s *StoreService) GetByName(name string) (*domain.Store, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(name), " ", "")
	return s.repo.GetStoreByName(normalized)
}

func (s *StoreService) SetStatus(id int, isOpen bool) error {
	return s.repo.SetStoreStatus(id, isOpen)
}

func (s *StoreService) Menu(storeID int) ([]domain.MenuItem, error) {
	return s.repo.GetMenu(storeID)
}

// ReplaceMenu overwrites the whole embedded list, backfilling missing
// item ids by position.
func (s *StoreService) ReplaceMenu(storeID int, menu []domain.MenuItem) error {
	for i := range menu {
		if menu[i].ID == 0 {
			menu[i].ID = i + 1
		}
	}
	return s.repo.SaveMenu(storeID, menu)
}

func (s *StoreService) UpdateMenuItem(storeID, itemID int, fields map[string]interface{}) error {
	menu, err := s.repo.GetMenu(storeID)
	if err != nil {
		return err
	}

	found := false
	for i := range menu {
		if menu[i].ID == itemID {
			applyItemFields(&menu[i], fields)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: menu item %d", ErrNotFound, itemID)
	}

	return s.repo.SaveMenu(storeID, menu)
}

// applyItemFields merges a partial JSON update into a menu item. Unknown
// keys are ignored, matching loose document updates.
func applyItemFields(item *domain.MenuItem, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				item.Name = v
			}
		case "price":
			if v, ok := value.(float64); ok {
				item.Price = v
			}
		case "is_popular":
			if v, ok := value.(bool); ok {
				item.IsPopular = v
			}
		case "is_favorite":
			if v, ok := value.(bool); ok {
				item.IsFavorite = v
			}
		case "rating":
			if v, ok := value.(float64); ok {
				item.Rating = v
			}
		case "review_count":
			if v, ok := value.(float64); ok {
				item.ReviewCount = int(v)
			}
		case "category":
			if v, ok := value.(string); ok {
				item.Category = v
			}
		case "image":
			if v, ok := value.(string); ok {
				item.Image = v
			}
		case "description":
			if v, ok := value.(string); ok {
				item.Description = v
			}
		case "is_available":
			if v, ok := value.(bool); ok {
				item.IsAvailable = v
			}
		}
	}
}

func (s *StoreService) CreateStore(req domain.StoreCreate) (*domain.Store, error) {
	if req.Name == "" || req.StoreID == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, store_id and password are required", ErrInvalidInput)
	}

	exists, err := s.repo.StoreExists(req.Email, req.StoreID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: store with this name, email, or store ID", ErrConflict)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if req.Rating == 0 {
		req.Rating = domain.DefaultRating
	}
	return s.repo.InsertStore(req, hash)
}

func (s *StoreService) ListRegistrations() ([]domain.StoreRegistration, error) {
	return s.repo.ListRegistrations()
}

var _ StoreServiceInterface = (*StoreService)(nil)
