package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	intconfig "railbook/internal/config"
	"railbook/internal/domain"
)

// AuthUser is the auth response payload.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ensureUsersTable(db *sql.DB) error {
	ddl := `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(32) NOT NULL DEFAULT 'user',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

func (a *API) issueToken(user AuthUser) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(a.Env.JWTSecret))
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	db := intconfig.DB
	if db == nil {
		RespondError(c, http.StatusServiceUnavailable, "user store unavailable", nil)
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)
	err := db.QueryRow(`
		SELECT id, name, email, password_hash, role
		FROM users
		WHERE email = ?
	`, strings.TrimSpace(req.Email)).Scan(&user.ID, &user.Name, &user.Email, &passwordHash, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "user lookup failed", err)
		}
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}

	token, err := a.issueToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "token signing failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// POST /api/auth/register
func (a *API) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Name == "":
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "required"})
		return
	case !strings.Contains(req.Email, "@"):
		RespondDomainError(c, domain.ValidationError{Field: "email", Msg: "invalid"})
		return
	case len(req.Password) < 8:
		RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "at least 8 characters"})
		return
	}

	db := intconfig.DB
	if db == nil {
		RespondError(c, http.StatusServiceUnavailable, "user store unavailable", nil)
		return
	}
	if err := ensureUsersTable(db); err != nil {
		RespondError(c, http.StatusInternalServerError, "user store init failed", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "password hashing failed", err)
		return
	}

	user := AuthUser{ID: uuid.NewString(), Name: req.Name, Email: req.Email, Role: domain.RoleUser}
	if _, err := db.Exec(`
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES (?,?,?,?,?)
	`, user.ID, user.Name, user.Email, string(hash), user.Role); err != nil {
		RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err})
		return
	}

	token, err := a.issueToken(user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "token signing failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}
