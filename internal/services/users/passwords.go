package users

import (
	"context"
	"errors"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/sustainaByte/orghub/internal/models"
	"github.com/sustainaByte/orghub/internal/services/auth"
	"golang.org/x/crypto/bcrypt"
)

// ForgotPassword issues a reset token for the account and mails it out.
func (s *Service) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	user, err := s.users.FindOne(ctx, "email = ?", req.Email)
	if err != nil {
		return err
	}

	token, err := s.tokens.IssueResetToken(user)
	if err != nil {
		return err
	}

	if s.mailer.Enabled() {
		if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
			return err
		}
	} else {
		fiberlog.Warnf("SMTP disabled, reset token for %s not delivered", user.Email)
	}
	return nil
}

// ResetPassword sets a new password, authorized either by a valid reset token
// or by the authenticated caller proving their current password.
func (s *Service) ResetPassword(ctx context.Context, actor *auth.Principal, req *models.ResetPasswordRequest) error {
	var user *models.User

	switch {
	case req.ResetToken != "":
		claims, err := s.tokens.Verify(req.ResetToken, auth.TokenUseReset)
		if err != nil {
			return err
		}
		user, err = s.users.FindByID(ctx, claims.Subject)
		if err != nil {
			return err
		}

	case actor != nil && req.CurrentPassword != "":
		var err error
		user, err = s.users.FindByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			return models.NewUnauthorizedError(err)
		}

	default:
		return models.NewBadRequestError("", errors.New("reset token or current password required"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.users.Save(ctx, user)
}
