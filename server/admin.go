package server

import (
	"time"

	"foliocms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const adminSessionCookie = "admin_session"

// AdminLogin handles POST /admin/login. It compares the submitted password
// against the stored bcrypt hash and issues a session cookie on success.
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, models.NewValidationError("email and password are required"))
	}

	user, err := s.userLookup.FindByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("invalid credentials"))
	}

	expires := time.Now().Add(24 * time.Hour)
	token, err := s.sessionToken(user.ID, expires)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     adminSessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"user": user})
}

// AdminLogout handles POST /admin/logout.
func (s *Server) AdminLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     adminSessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminMe handles GET /admin/me for an authenticated console session.
func (s *Server) AdminMe(c *fiber.Ctx) error {
	userID := c.Locals("adminID").(uint)

	user, err := s.users.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// AdminRequired returns a middleware validating the admin session cookie.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(adminSessionCookie)
		if cookie == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("session required"))
		}

		token, err := jwt.Parse(cookie, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, models.NewUnauthorizedError("invalid session"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, models.NewUnauthorizedError("invalid session"))
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return models.RespondWithError(c, models.NewUnauthorizedError("invalid session"))
		}

		c.Locals("adminID", uint(sub))
		return c.Next()
	}
}

func (s *Server) sessionToken(userID uint, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
		"exp": expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
