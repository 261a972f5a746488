package repository

import (
	"github.com/madrasa-lms/madrasa/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	Update(lesson *model.Lesson) error
	FindByID(id uint) (*model.Lesson, error)
	FindByIDWithTest(id uint) (*model.Lesson, error)
	FindAll(includeHidden bool) ([]model.Lesson, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) Update(lesson *model.Lesson) error {
	return r.db.Save(lesson).Error
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.First(&lesson, id).Error
	return &lesson, err
}

func (r *lessonRepository) FindByIDWithTest(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.Preload("Test").First(&lesson, id).Error
	return &lesson, err
}

// FindAll lists lessons newest first. Students get only visible lessons;
// admins see everything.
func (r *lessonRepository) FindAll(includeHidden bool) ([]model.Lesson, error) {
	var lessons []model.Lesson
	query := r.db.Preload("Test").Order("created_at DESC")
	if !includeHidden {
		query = query.Where("is_hidden = ?", false)
	}
	err := query.Find(&lessons).Error
	return lessons, err
}
