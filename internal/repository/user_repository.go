package repository

import (
	"github.com/madrasa-lms/madrasa/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	Update(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByUsernameAndEmail(username, email string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmailExcept(email string, userID uint) (bool, error)
	SetRole(userID uint, role model.Role) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile").First(&user, id).Error
	return &user, err
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile").Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *userRepository) FindByUsernameAndEmail(username, email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ? AND email = ?", username, email).First(&user).Error
	return &user, err
}

func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByEmailExcept(email string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error
	return count > 0, err
}

// SetRole upserts the profile row for the user. Promotion and demotion both
// go through here.
func (r *userRepository) SetRole(userID uint, role model.Role) error {
	var profile model.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = model.Profile{UserID: userID, Role: role}
		return r.db.Create(&profile).Error
	}
	if err != nil {
		return err
	}
	profile.Role = role
	return r.db.Save(&profile).Error
}
