package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	require.Len(t, s, n*2)

	_, err = hex.DecodeString(s)
	require.NoError(t, err)
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	if a == b {
		t.Logf("warning: two MakeRandHexString(32) results are identical; extremely unlikely")
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ann@example.com", NormalizeEmail("  Ann@Example.COM "))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"ann@example.com", false},
		{"ann", true},
		{"@example.com", true},
		{"ann@", true},
		{"a@b@c", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateEmail(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrorValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	require.ErrorIs(t, ValidatePassword("12345"), ErrorValidation)
	require.NoError(t, ValidatePassword("123456"))
}

func TestValidationError_Field(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ValidationError{Field: "name", Reason: "too short"})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "invalid name: too short", ve.Error())
}

func TestRemoteError_Unwrap(t *testing.T) {
	err := &RemoteError{Op: "add profile", Err: ErrorNotFound}
	require.ErrorIs(t, err, ErrorNotFound)
	assert.Equal(t, "add profile: not found", err.Error())
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inColor   string
		wantName  string
		wantField string
	}{
		{name: "trimmed", inName: "  Kids  ", inColor: "bg-blue-600", wantName: "Kids"},
		{name: "min length", inName: "Ann", inColor: DefaultProfileColor, wantName: "Ann"},
		{name: "max length in runes", inName: "ééééééééééééééééééé1", inColor: "bg-gray-600", wantName: "ééééééééééééééééééé1"},
		{name: "too short after trim", inName: "  ab ", inColor: "bg-blue-600", wantField: "name"},
		{name: "too long", inName: "abcdefghijklmnopqrstu", inColor: "bg-blue-600", wantField: "name"},
		{name: "unknown color", inName: "Kids", inColor: "bg-black", wantField: "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProfile(tt.inName, tt.inColor)
			if tt.wantField != "" {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantField, ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got)
		})
	}
}

func TestProfileColors(t *testing.T) {
	require.Len(t, ProfileColors, 10)
	assert.True(t, IsProfileColor(DefaultProfileColor))
	assert.False(t, IsProfileColor(""))
}

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	assert.Equal(t, make([]byte, 6), b)
	WipeByteArray(nil)
}
