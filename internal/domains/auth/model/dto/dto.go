package dto

import (
	"clinic/infras/jwt"
	adminModel "clinic/internal/domains/admin/model"
	"clinic/shared/constant"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName            string `json:"first_name"            validate:"required,max=100"`
	LastName             string `json:"last_name"             validate:"required,max=100"`
	Username             string `json:"username"              validate:"required,min=3,max=50,alphanum"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func (r *RegisterRequest) ToAdminModel(createdBy string, hashedPassword string) adminModel.Admin {
	return adminModel.Admin{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Username:  strings.ToLower(r.Username),
		Password:  hashedPassword,
		Role:      constant.RoleAdmin,
		Enabled:   true,
		Metadata:  gModel.NewMetadata(createdBy, timezone.Now()),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	Admin        LoginIdentity `json:"admin"`
}

type LoginIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

func (l *LoginResponse) FromAdmin(admin adminModel.Admin) {
	l.Admin = LoginIdentity{
		ID:       admin.ID,
		Username: admin.Username,
		FullName: admin.FullName(),
		Role:     admin.Role,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

// LogoutRequest may carry the refresh token so it is revoked along with the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}
