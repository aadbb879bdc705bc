package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Name string `json:"name" validate:"required"`
	Days int    `json:"days,omitempty" validate:"omitempty,min=1,max=30"`
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Pai"}`, ""},
		{"empty", ``, ErrEmptyBody.Error()},
		{"wrong type", `{"name":5}`, "incorrect JSON type"},
		{"trailing data", `{"name":"Pai"}{"name":"Nan"}`, "single JSON value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst sampleBody
			err := DecodeJSONBody(rec, req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Pai", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteJSONResponse_NoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONResponse(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNoContent, map[string]string{"a": "b"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleBody{Name: "Pai"}, "missing"))

	err := ValidateStruct(sampleBody{}, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.Equal(t, "missing", err.Error())

	err = ValidateStruct(sampleBody{Name: "Pai", Days: 31}, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.Contains(t, err.Error(), "days (max)")
}
