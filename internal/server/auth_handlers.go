package server

import (
	"fmt"
	"strconv"
	"time"

	"documo/internal/models"
	"documo/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessTokenTTL bounds how long a stolen bearer token stays usable. Clients
// rotate through the long-lived opaque session token.
const accessTokenTTL = 15 * time.Minute

// Signup handles POST /api/auth/signup. It provisions an organization with
// its first user, issues a session, and mails an email-verification link.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email            string `json:"email"`
		Password         string `json:"password"`
		OrganizationName string `json:"organization_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.CreateWithOrganization(c.UserContext(), req.Email, req.Password, req.OrganizationName)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	verification, err := s.authTokenRepo.Issue(c.UserContext(), user.ID, models.AuthTokenEmailVerification)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if mailErr := s.mailer.SendEmailVerification(c.UserContext(), user.Email, verification.Token); mailErr != nil {
		observability.MailFailures.Inc()
	}

	return s.respondWithSession(c, fiber.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil || !s.userRepo.CheckPassword(user, req.Password) {
		// Unknown email and wrong password are indistinguishable.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	return s.respondWithSession(c, fiber.StatusOK, user)
}

// Refresh handles POST /api/auth/refresh. It rotates the opaque session
// token: the presented one is revoked and a fresh pair is returned.
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		SessionToken string `json:"session_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.SessionToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Session token is required"))
	}

	session, err := s.authTokenRepo.GetActiveSession(c.UserContext(), req.SessionToken)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if err := s.authTokenRepo.Revoke(c.UserContext(), req.SessionToken); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return s.respondWithSession(c, fiber.StatusOK, session.User)
}

// Logout handles POST /api/auth/logout. Revoking an already-dead session
// still returns 200.
func (s *Server) Logout(c *fiber.Ctx) error {
	var req struct {
		SessionToken string `json:"session_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.SessionToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Session token is required"))
	}

	if err := s.authTokenRepo.Revoke(c.UserContext(), req.SessionToken); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// VerifyEmail handles POST /api/auth/verify-email
func (s *Server) VerifyEmail(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token is required"))
	}

	consumed, err := s.authTokenRepo.Consume(c.UserContext(), req.Token, models.AuthTokenEmailVerification)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if err := s.userRepo.MarkEmailVerified(c.UserContext(), consumed.UserID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Email verified"})
}

// RequestPasswordReset handles POST /api/auth/password-reset/request. The
// response never reveals whether the email exists.
func (s *Server) RequestPasswordReset(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	response := fiber.Map{"message": "If the account exists, a reset link has been sent"}

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return c.JSON(response)
	}

	reset, err := s.authTokenRepo.Issue(c.UserContext(), user.ID, models.AuthTokenPasswordReset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if mailErr := s.mailer.SendPasswordReset(c.UserContext(), user.Email, reset.Token); mailErr != nil {
		observability.MailFailures.Inc()
	}

	return c.JSON(response)
}

// ResetPassword handles POST /api/auth/password-reset/confirm. A successful
// reset revokes every open session for the user.
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Token and password are required"))
	}

	consumed, err := s.authTokenRepo.Consume(c.UserContext(), req.Token, models.AuthTokenPasswordReset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if err := s.userRepo.UpdatePassword(c.UserContext(), consumed.UserID, req.Password); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if err := s.authTokenRepo.RevokeAllForUser(c.UserContext(), consumed.UserID, models.AuthTokenSession); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// respondWithSession issues the access/session token pair for the user.
func (s *Server) respondWithSession(c *fiber.Ctx, status int, user *models.User) error {
	session, err := s.authTokenRepo.Issue(c.UserContext(), user.ID, models.AuthTokenSession)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	access, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"token":              access,
		"session_token":      session.Token,
		"session_expires_at": session.ExpiresAt,
		"user":               user,
	})
}

// generateToken creates a short-lived JWT access token for the user.
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"org": user.OrganizationID,
		"iss": "documo-api",
		"aud": "documo-client",
		"exp": now.Add(accessTokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
