package shopping

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"foodgram/domain"
	"foodgram/internal/metrics"
	"foodgram/internal/utils/mailing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	listHeader   = "Shopping list:"
	emailSubject = "Your Foodgram shopping list"
	emailBody    = "Your shopping list is attached."
)

type (
	ShoppingService interface {
		Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		Download(ctx context.Context, userID string) ([]byte, error)
		SendByEmail(ctx context.Context, userID string) error
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		mailer             mailing.Mailer
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, mailer mailing.Mailer) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		mailer:             mailer,
	}
}

func (s *shoppingService) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.shoppingRepository.AggregateCart(ctx, uid)
}

func (s *shoppingService) Download(ctx context.Context, userID string) ([]byte, error) {
	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}
	metrics.ShoppingListExports.WithLabelValues("download").Inc()
	return Render(items), nil
}

func (s *shoppingService) SendByEmail(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	user, err := s.shoppingRepository.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	items, err := s.shoppingRepository.AggregateCart(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.mailer.SendMail(user.Email, emailSubject, emailBody, mailing.Attachment{
		Name:    domain.ShoppingListFileName,
		Content: Render(items),
	}); err != nil {
		return fmt.Errorf("send shopping list to %s: %w", user.Email, err)
	}

	metrics.ShoppingListExports.WithLabelValues("email").Inc()
	return nil
}

// Render formats items as the plain text shopping list document.
func Render(items []domain.ShoppingListItem) []byte {
	var buf bytes.Buffer
	buf.WriteString(listHeader)
	buf.WriteString("\n\n")
	for _, item := range items {
		fmt.Fprintf(&buf, "- %s (%s) — %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return buf.Bytes()
}
