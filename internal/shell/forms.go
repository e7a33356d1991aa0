package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/domain"
)

const defaultRating = 5

type ReviewForm struct {
	OrderID   int64  `json:"order_id"`
	ProjectID int64  `json:"project_id,omitempty"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
}

// OpenReview opens the review dialog for a finished order.
func (s *Shell) OpenReview(order domain.Order) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.Review = &ReviewForm{OrderID: order.ID, ProjectID: order.ProjectID, Rating: defaultRating}
	s.state.Modals.Review = true
	s.mu.Unlock()
	return nil
}

// OpenReviewFor loads an order and opens the review dialog for it.
func (s *Shell) OpenReviewFor(ctx context.Context, orderID int64) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	o, err := s.api.Order(ctx, orderID)
	if err != nil {
		return err
	}
	return s.OpenReview(o.Order)
}

// SubmitReview posts the review. A zero rating keeps the dialog's default.
func (s *Shell) SubmitReview(ctx context.Context, rating int, content string) error {
	s.mu.Lock()
	form := s.state.Review
	s.mu.Unlock()
	if form == nil {
		return fmt.Errorf("review: %w", ErrDialogClosed)
	}
	if rating == 0 {
		rating = form.Rating
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return s.invalid(ctx, "content", msgReviewRequired)
	}
	if rating < 1 || rating > 5 {
		return s.invalid(ctx, "rating", msgRatingInvalid)
	}

	if err := s.api.CreateReview(ctx, form.OrderID, rating, content); err != nil {
		return err
	}
	s.notify(ctx, client.LevelSuccess, msgReviewOK)
	s.CloseModal("review")
	return nil
}

// OpenInvoice opens the invoice dialog for one order, billed at its total.
func (s *Shell) OpenInvoice(order domain.Order) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.Invoice = &domain.InvoiceApply{
		OrderIDs:    []int64{order.ID},
		Amount:      order.TotalFee,
		InvoiceType: domain.InvoicePersonal,
	}
	s.state.Modals.Invoice = true
	s.mu.Unlock()
	return nil
}

func (s *Shell) OpenInvoiceFor(ctx context.Context, orderID int64) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	o, err := s.api.Order(ctx, orderID)
	if err != nil {
		return err
	}
	return s.OpenInvoice(o.Order)
}

// InvoiceInput is what the user filled into the invoice dialog.
type InvoiceInput struct {
	InvoiceType string `json:"invoice_type"`
	Title       string `json:"title"`
	TaxID       string `json:"tax_id"`
	Email       string `json:"email"`
}

func (s *Shell) SubmitInvoice(ctx context.Context, in InvoiceInput) error {
	s.mu.Lock()
	open := s.state.Invoice
	s.mu.Unlock()
	if open == nil {
		return fmt.Errorf("invoice: %w", ErrDialogClosed)
	}

	apply := *open
	if in.InvoiceType != "" {
		apply.InvoiceType = in.InvoiceType
	}
	apply.Title = strings.TrimSpace(in.Title)
	apply.TaxID = strings.TrimSpace(in.TaxID)
	apply.Email = strings.TrimSpace(in.Email)

	if apply.Title == "" {
		return s.invalid(ctx, "title", msgTitleRequired)
	}
	if apply.Email == "" {
		return s.invalid(ctx, "email", msgEmailRequired)
	}
	if apply.InvoiceType == domain.InvoiceCompany && apply.TaxID == "" {
		return s.invalid(ctx, "tax_id", msgTaxIDRequired)
	}

	if _, err := s.api.ApplyInvoice(ctx, apply); err != nil {
		return err
	}
	s.notify(ctx, client.LevelSuccess, msgInvoiceOK)
	s.CloseModal("invoice")
	return nil
}

// OpenProfile opens the profile editor prefilled from the cached profile.
func (s *Shell) OpenProfile() error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	form := &domain.ProfileUpdate{}
	if u := s.session.User(); u != nil {
		form.Nickname = u.Nickname
		form.Avatar = u.Avatar
	}
	s.mu.Lock()
	s.state.Profile = form
	s.state.Modals.Profile = true
	s.mu.Unlock()
	return nil
}

// SubmitProfile saves the profile, then re-reads it so the cached copy
// matches what the backend stored.
func (s *Shell) SubmitProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.User, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := s.api.UpdateProfile(ctx, in); err != nil {
		return nil, err
	}
	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.session.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	s.notify(ctx, client.LevelSuccess, msgProfileOK)
	s.CloseModal("profile")
	return user, nil
}
