package auth

import (
	"errors"
	"time"

	"institute-backend/internal/config"
	"institute-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity of an admin-panel login.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// StudentClaims carries the identity of a registered student.
type StudentClaims struct {
	StudentID int    `json:"student_id"`
	RollNo    string `json:"roll_no"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// GenerateToken creates a JWT for an admin-panel login.
func (j *JWTManager) GenerateToken(userID int, email, role string) (string, error) {
	now := timeutil.Now()
	expirationTime := now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateToken verifies an admin JWT and returns the claims.
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := j.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateStudentToken creates a JWT for a registered student.
func (j *JWTManager) GenerateStudentToken(studentID int, rollNo, email string) (string, error) {
	now := timeutil.Now()
	expirationTime := now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)

	claims := &StudentClaims{
		StudentID: studentID,
		RollNo:    rollNo,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateStudentToken verifies a student JWT and returns the claims.
func (j *JWTManager) ValidateStudentToken(tokenString string) (*StudentClaims, error) {
	claims := &StudentClaims{}
	if err := j.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.StudentID == 0 {
		return nil, errors.New("not a student token")
	}
	return claims, nil
}

func (j *JWTManager) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
