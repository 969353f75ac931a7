package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pratham-associates/listings/internal/ai"
	"github.com/pratham-associates/listings/internal/logger"
	"github.com/pratham-associates/listings/internal/models"
	"github.com/pratham-associates/listings/internal/repository"
)

// ErrInvalidInquiry wraps the validator.ValidationErrors of a rejected submission.
var ErrInvalidInquiry = errors.New("invalid inquiry")

// InquiryConfirmation is returned to the visitor after a successful submission.
const InquiryConfirmation = "Thank you for your inquiry! We'll contact you soon."

// InquiryResult is the outcome of a submission.
type InquiryResult struct {
	Inquiry  *models.Inquiry    `json:"inquiry"`
	Analysis ai.InquiryAnalysis `json:"analysis"`
	Message  string             `json:"message"`
}

// InquiryService accepts and lists contact-form submissions.
type InquiryService interface {
	// Submit validates, classifies and stores an inquiry. Invalid input is
	// rejected with ErrInvalidInquiry before anything is stored or classified.
	Submit(ctx context.Context, in models.InquiryInput) (*InquiryResult, error)

	// List returns all inquiries in creation order.
	List(ctx context.Context) ([]models.Inquiry, error)
}

type inquiryService struct {
	repo     repository.InquiryRepository
	advisor  ai.Advisor
	validate *validator.Validate
	log      *logger.Logger
}

// NewInquiryService creates a new instance of InquiryService.
func NewInquiryService(repo repository.InquiryRepository, advisor ai.Advisor, log *logger.Logger) InquiryService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	models.ConfigureValidator(validate)

	return &inquiryService{
		repo:     repo,
		advisor:  advisor,
		validate: validate,
		log:      log,
	}
}

func (s *inquiryService) Submit(ctx context.Context, in models.InquiryInput) (*InquiryResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("Inquiry rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrInvalidInquiry, err)
	}

	// Workflow transitions happen elsewhere; every submission starts as new.
	in.Status = models.InquiryStatusNew

	analysis, err := s.advisor.AnalyzeInquiry(ctx, in.Message)
	if err != nil {
		s.log.Warn("AI inquiry analysis failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		fallback := ai.FallbackAnalysis()
		analysis = &fallback
	}

	inq, err := s.repo.Create(ctx, in)
	if err != nil {
		s.log.Error("Failed to store inquiry", err, map[string]interface{}{
			"email": in.Email,
		})
		return nil, fmt.Errorf("failed to store inquiry: %w", err)
	}

	s.log.Info("Inquiry received", map[string]interface{}{
		"inquiry_id": inq.ID,
		"urgency":    analysis.Urgency,
	})

	return &InquiryResult{
		Inquiry:  inq,
		Analysis: *analysis,
		Message:  InquiryConfirmation,
	}, nil
}

func (s *inquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	inquiries, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list inquiries", err, nil)
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, nil
}
