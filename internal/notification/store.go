package notification

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

// Sink é o destino final de uma notificação.
type Sink interface {
	Create(ctx context.Context, n *models.Notification) error
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// ListForRecipient devolve as notificações mais recentes primeiro, com o remetente resumido.
func (s *Store) ListForRecipient(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := s.db.WithContext(ctx).
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "nome")
		}).
		Where("destinatario_id = ?", recipientID).
		Order("data_criacao DESC").
		Find(&list).Error
	return list, err
}

func (s *Store) Get(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) MarkRead(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Model(n).Update("lida", true).Error; err != nil {
		return err
	}
	n.Read = true
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("destinatario_id = ? AND lida = ?", recipientID, false).
		Update("lida", true)
	return res.RowsAffected, res.Error
}
