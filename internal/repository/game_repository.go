package repository

import (
	"context"

	"gorm.io/gorm"

	"gamerslobby/backend/internal/models"
)

// GameRepository defines persistence operations for games.
type GameRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Game, error)
	FindByID(ctx context.Context, id uint) (*models.Game, error)
	FindByName(ctx context.Context, name string) (*models.Game, error)
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository builds a GORM-backed game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) List(ctx context.Context, opts ListOptions) ([]models.Game, error) {
	var games []models.Game
	if err := opts.apply(r.db.WithContext(ctx)).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) FindByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindByName(ctx context.Context, name string) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected, res.Error
}

func (r *gameRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Game{}, id)
	return res.RowsAffected, res.Error
}
