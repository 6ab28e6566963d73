package services

import (
	"errors"
	"fmt"
	"gin-taskboard/constants"
	"gin-taskboard/models"
	"gin-taskboard/repositories"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenLifetime セッショントークンの有効期間
const TokenLifetime = 7 * 24 * time.Hour

// SessionClaims セッションクッキーに埋め込むクレーム
type SessionClaims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type IAuthService interface {
	Register(email string, password string) (*models.User, error)
	Login(email string, password string) (*models.User, string, error)
	GetUserFromToken(tokenString string) (*models.User, error)
	FindUserById(userID uint) (*models.User, error)
	FindAllUsers() (*[]models.User, error)
}

type AuthService struct {
	repository repositories.IAuthRepository
}

func NewAuthService(repository repositories.IAuthRepository) IAuthService {
	return &AuthService{repository: repository}
}

func (s *AuthService) Register(email string, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     constants.RoleUser,
	}
	return s.repository.CreateUser(user)
}

// Login 認証に成功したらユーザーと署名済みトークンを返す。
// メール不存在とパスワード不一致は同じエラーにする（存在推測を防ぐ）。
func (s *AuthService) Login(email string, password string) (*models.User, string, error) {
	foundUser, err := s.repository.FindUserByEmail(email)
	if err != nil {
		if err.Error() == constants.ErrUserNotFound {
			return nil, "", errors.New(constants.ErrInvalidCredentials)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(password)); err != nil {
		return nil, "", errors.New(constants.ErrInvalidCredentials)
	}

	token, err := CreateToken(foundUser.ID, foundUser.Role)
	if err != nil {
		return nil, "", err
	}

	return foundUser, token, nil
}

func CreateToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

// GetUserFromToken トークンを検証し、埋め込まれたユーザーIDで
// ユーザーを引き直す。削除済みユーザーのトークンはここで弾かれる。
func (s *AuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET_KEY")), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return s.repository.FindUserByID(claims.UserID)
}

func (s *AuthService) FindUserById(userID uint) (*models.User, error) {
	return s.repository.FindUserByID(userID)
}

func (s *AuthService) FindAllUsers() (*[]models.User, error) {
	return s.repository.FindAllUsers()
}
