package support

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/internal/utils/mailing"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	// Mailer matches mailing.SendMail.
	Mailer func(toEmail, replyTo, subject, body string) error

	SupportService interface {
		Contact(ctx context.Context, req domain.ContactRequest) error
		GetHelpTopics(ctx context.Context, category string) ([]*domain.HelpTopic, error)
		GetHelpTopic(ctx context.Context, id string) (*domain.HelpTopic, error)
		SeedHelpTopics(ctx context.Context) error
	}

	supportService struct {
		supportRepository SupportRepository
		mailer            Mailer
		supportEmail      string
	}
)

func NewSupportService(supportRepository SupportRepository, mailer Mailer, supportEmail string) SupportService {
	if mailer == nil {
		mailer = mailing.SendMail
	}
	return &supportService{
		supportRepository: supportRepository,
		mailer:            mailer,
		supportEmail:      supportEmail,
	}
}

func toHelpTopicDomain(topic *entities.HelpTopic) *domain.HelpTopic {
	return &domain.HelpTopic{
		ID:        topic.ID.String(),
		Category:  topic.Category,
		Question:  topic.Question,
		Answer:    topic.Answer,
		Views:     topic.Views,
		UpdatedAt: topic.UpdatedAt,
	}
}

func (s *supportService) Contact(ctx context.Context, req domain.ContactRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return domain.ErrValidation
	}

	subject := fmt.Sprintf("Support request from %s", name)
	body := fmt.Sprintf("<p><b>From:</b> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(name), html.EscapeString(email),
		strings.ReplaceAll(html.EscapeString(message), "\n", "<br>"))

	if s.supportEmail == "" {
		log.Infof("support message from %s <%s>: %s", name, email, message)
		return nil
	}

	err := s.mailer(s.supportEmail, email, subject, body)
	if errors.Is(err, mailing.ErrMailNotConfigured) {
		log.Infof("support message from %s <%s>: %s", name, email, message)
		return nil
	}
	if err != nil {
		log.Errorf("failed to deliver support message from %s: %v", email, err)
		return err
	}
	return nil
}

func (s *supportService) GetHelpTopics(ctx context.Context, category string) ([]*domain.HelpTopic, error) {
	topics, err := s.supportRepository.GetHelpTopics(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	result := make([]*domain.HelpTopic, 0, len(topics))
	for _, topic := range topics {
		result = append(result, toHelpTopicDomain(topic))
	}
	return result, nil
}

func (s *supportService) GetHelpTopic(ctx context.Context, id string) (*domain.HelpTopic, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrHelpTopicNotFound
	}
	topic, err := s.supportRepository.ViewHelpTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	return toHelpTopicDomain(topic), nil
}

// SeedHelpTopics inserts the default FAQ when the table is empty.
func (s *supportService) SeedHelpTopics(ctx context.Context) error {
	count, err := s.supportRepository.CountHelpTopics(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	topics := make([]*entities.HelpTopic, 0, len(defaultHelpTopics))
	for _, t := range defaultHelpTopics {
		topics = append(topics, &entities.HelpTopic{
			ID:       uuid.New(),
			Category: t.category,
			Question: t.question,
			Answer:   t.answer,
		})
	}
	return s.supportRepository.CreateHelpTopics(ctx, topics)
}

var defaultHelpTopics = []struct {
	category, question, answer string
}{
	{"Getting Started", "How do I create an account?",
		"Register with your name, email and a password, and choose whether you are donating food or collecting it."},
	{"Donors", "How do I post a donation?",
		"Open the donate page, describe the food, set when it expires and where it can be picked up. A photo helps collectors decide quickly."},
	{"Donors", "Can I edit a donation after posting it?",
		"Yes, as long as nobody has accepted it yet. Once a collector accepts it the donation is locked."},
	{"Collectors", "How do I accept a donation?",
		"Browse available donations and press accept. The first collector to accept gets the pickup; everyone else sees it disappear from the list."},
	{"Collectors", "How do I mark a pickup as delivered?",
		"Upload at least one photo of the handover along with the delivery location. The donation is completed once the proof is saved."},
	{"Account & Privacy", "Who can see my address?",
		"Only the pickup address of a donation is shown to collectors. Your account details are never shared."},
	{"Troubleshooting", "A donation I accepted is no longer in my list.",
		"The donor or an administrator may have released it. Check your notifications or contact support."},
}
