package response_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jemin1834/orders-prediction/internal/http/response"
)

func TestOKWithData(t *testing.T) {
	resp := response.OKWithData(map[string]any{"id": 1})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := response.Error("something went wrong")
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Email string `validate:"required,email"`
		Date  string `validate:"required,datetime=2006-01-02"`
	}

	validate := validator.New()

	err := validate.Struct(request{Email: "not-an-email", Date: "03-01-2022"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field Date can contain only date in format 2006-01-02")

	err = validate.Struct(request{})
	require.Error(t, err)

	resp = response.ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, resp.Error, "field Email is a required field")
	assert.Contains(t, resp.Error, "field Date is a required field")
}
