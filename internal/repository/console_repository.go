package repository

import (
	"context"

	"gorm.io/gorm"

	"gamerslobby/backend/internal/models"
)

// ConsoleRepository defines persistence operations for consoles.
type ConsoleRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Console, error)
	FindByID(ctx context.Context, id uint) (*models.Console, error)
	FindByName(ctx context.Context, name string) (*models.Console, error)
	Create(ctx context.Context, console *models.Console) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type consoleRepository struct {
	db *gorm.DB
}

// NewConsoleRepository builds a GORM-backed console repository.
func NewConsoleRepository(db *gorm.DB) ConsoleRepository {
	return &consoleRepository{db: db}
}

func (r *consoleRepository) List(ctx context.Context, opts ListOptions) ([]models.Console, error) {
	var consoles []models.Console
	if err := opts.apply(r.db.WithContext(ctx)).Find(&consoles).Error; err != nil {
		return nil, err
	}
	return consoles, nil
}

func (r *consoleRepository) FindByID(ctx context.Context, id uint) (*models.Console, error) {
	var console models.Console
	if err := r.db.WithContext(ctx).First(&console, id).Error; err != nil {
		return nil, err
	}
	return &console, nil
}

func (r *consoleRepository) FindByName(ctx context.Context, name string) (*models.Console, error) {
	var console models.Console
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&console).Error; err != nil {
		return nil, err
	}
	return &console, nil
}

func (r *consoleRepository) Create(ctx context.Context, console *models.Console) error {
	return r.db.WithContext(ctx).Create(console).Error
}

func (r *consoleRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Console{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected, res.Error
}

func (r *consoleRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Console{}, id)
	return res.RowsAffected, res.Error
}
