package support

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SupportRepository interface {
		GetHelpTopics(ctx context.Context, category string) ([]*entities.HelpTopic, error)
		ViewHelpTopic(ctx context.Context, id string) (*entities.HelpTopic, error)
		CountHelpTopics(ctx context.Context) (int64, error)
		CreateHelpTopics(ctx context.Context, topics []*entities.HelpTopic) error
	}

	supportRepository struct {
		db *gorm.DB
	}
)

func NewSupportRepository(db *gorm.DB) SupportRepository {
	return &supportRepository{db: db}
}

func (r *supportRepository) GetHelpTopics(ctx context.Context, category string) ([]*entities.HelpTopic, error) {
	var topics []*entities.HelpTopic
	query := r.db.WithContext(ctx).Model(&entities.HelpTopic{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("category ASC, views DESC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// ViewHelpTopic bumps the view counter in the database and returns the
// updated row.
func (r *supportRepository) ViewHelpTopic(ctx context.Context, id string) (*entities.HelpTopic, error) {
	var topic entities.HelpTopic
	result := r.db.WithContext(ctx).
		Model(&topic).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrHelpTopicNotFound
	}
	return &topic, nil
}

func (r *supportRepository) CountHelpTopics(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.HelpTopic{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *supportRepository) CreateHelpTopics(ctx context.Context, topics []*entities.HelpTopic) error {
	if len(topics) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&topics).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}
