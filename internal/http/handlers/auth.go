package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/domain/models"
	"smartride-backend/internal/http/middleware"
	"smartride-backend/internal/repositories"
	"smartride-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.UserName == "" || req.Email == "" {
		RespondFail(c, http.StatusBadRequest, "userName and email are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		RespondFail(c, http.StatusBadRequest, "invalid email")
		return
	}
	if len(req.Password) < 6 {
		RespondFail(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondFail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	repo := repositories.UserRepo{}
	id, err := repo.Insert(models.User{
		UserName:     req.UserName,
		Email:        req.Email,
		FullName:     strings.TrimSpace(req.FullName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(requestID(c), "auth", "register", fmt.Sprintf("user_id=%d", id))
	RespondOK(c, http.StatusCreated, "registered", gin.H{"id": id})
}

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	login := strings.TrimSpace(req.Login)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" || req.Password == "" {
		RespondFail(c, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := repositories.UserRepo{}.GetByLogin(login)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondFail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		RespondDomainError(c, err)
		return
	}
	if !user.IsActive {
		RespondFail(c, http.StatusUnauthorized, "account disabled")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		RespondFail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondFail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	utils.LogEvent(requestID(c), "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	RespondOK(c, http.StatusOK, "logged in", gin.H{
		"token": signed,
		"user":  toUserDTO(user),
	})
}

func Profile(c *gin.Context) {
	rc := middleware.CurrentUser(c)
	user, err := repositories.UserRepo{}.GetByID(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, "profile", toUserDTO(user))
}
