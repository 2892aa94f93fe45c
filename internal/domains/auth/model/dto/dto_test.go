package dto_test

import (
	"clinic/infras/jwt"
	adminModel "clinic/internal/domains/admin/model"
	"clinic/internal/domains/auth/model/dto"
	"clinic/shared/constant"
	"clinic/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)
	response.FromAdmin(adminModel.Admin{ID: "admin-1", FirstName: "Sara", LastName: "Ahmadi", Username: "sara", Role: constant.RoleAdmin})

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, "Sara Ahmadi", response.Admin.FullName)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToAdminModel(t *testing.T) {
	req := dto.RegisterRequest{
		FirstName: " Sara ",
		LastName:  "Ahmadi",
		Username:  "Sara",
		Password:  "secret-password",
	}

	admin := req.ToAdminModel("root", "hashed")

	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, "Sara", admin.FirstName)
	assert.Equal(t, "sara", admin.Username)
	assert.Equal(t, "hashed", admin.Password)
	assert.Nil(t, admin.OldPassword)
	assert.Equal(t, constant.RoleAdmin, admin.Role)
	assert.True(t, admin.Enabled)
	assert.Equal(t, "root", admin.CreatedBy)
}

func TestRegisterRequest_Validation(t *testing.T) {
	req := dto.RegisterRequest{
		FirstName:            "Sara",
		LastName:             "Ahmadi",
		Username:             "sara",
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
	}

	assert.NoError(t, validator.ValidateStruct(&req))

	req.PasswordConfirmation = "another-password"
	assert.Error(t, validator.ValidateStruct(&req))
}
