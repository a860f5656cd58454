package repository

import (
	"context"

	"gorm.io/gorm"

	"gamerslobby/backend/internal/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPseudo(ctx context.Context, pseudo string) (*models.User, error)
	FindByCountry(ctx context.Context, country string) (*models.User, error)
	FindByPhone(ctx context.Context, phone int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context, opts ListOptions) ([]models.User, error) {
	var users []models.User
	if err := opts.apply(r.db.WithContext(ctx)).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPseudo(ctx context.Context, pseudo string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("pseudo = ?", pseudo).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByCountry(ctx context.Context, country string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("country = ?", country).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(ctx context.Context, phone int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected, res.Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	return res.RowsAffected, res.Error
}
