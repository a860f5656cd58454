package repository

import (
	"context"

	"gorm.io/gorm"

	"gamerslobby/backend/internal/models"
)

// LobbyRepository defines persistence operations for lobbies.
type LobbyRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Lobby, error)
	FindByID(ctx context.Context, id uint) (*models.Lobby, error)
	FindByLocalUser(ctx context.Context, userID uint) (*models.Lobby, error)
	FindByAwayUser(ctx context.Context, userID uint) (*models.Lobby, error)
	FindByGameConsole(ctx context.Context, gameConsoleID uint) (*models.Lobby, error)
	Create(ctx context.Context, lobby *models.Lobby) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type lobbyRepository struct {
	db *gorm.DB
}

// NewLobbyRepository builds a GORM-backed lobby repository.
func NewLobbyRepository(db *gorm.DB) LobbyRepository {
	return &lobbyRepository{db: db}
}

func (r *lobbyRepository) List(ctx context.Context, opts ListOptions) ([]models.Lobby, error) {
	var lobbies []models.Lobby
	if err := opts.apply(r.db.WithContext(ctx)).Find(&lobbies).Error; err != nil {
		return nil, err
	}
	return lobbies, nil
}

func (r *lobbyRepository) FindByID(ctx context.Context, id uint) (*models.Lobby, error) {
	var lobby models.Lobby
	if err := r.db.WithContext(ctx).First(&lobby, id).Error; err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (r *lobbyRepository) FindByLocalUser(ctx context.Context, userID uint) (*models.Lobby, error) {
	var lobby models.Lobby
	if err := r.db.WithContext(ctx).Where("id_user_local = ?", userID).First(&lobby).Error; err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (r *lobbyRepository) FindByAwayUser(ctx context.Context, userID uint) (*models.Lobby, error) {
	var lobby models.Lobby
	if err := r.db.WithContext(ctx).Where("id_user_away = ?", userID).First(&lobby).Error; err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (r *lobbyRepository) FindByGameConsole(ctx context.Context, gameConsoleID uint) (*models.Lobby, error) {
	var lobby models.Lobby
	if err := r.db.WithContext(ctx).Where("id_game_console = ?", gameConsoleID).First(&lobby).Error; err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (r *lobbyRepository) Create(ctx context.Context, lobby *models.Lobby) error {
	return r.db.WithContext(ctx).Create(lobby).Error
}

func (r *lobbyRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Lobby{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected, res.Error
}

func (r *lobbyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Lobby{}, id)
	return res.RowsAffected, res.Error
}
