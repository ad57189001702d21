package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDetectionRequest(t *testing.T) {
	req, err := NewDetectionRequest([]string{"autotag", "photo.jpg"})
	require.NoError(t, err)
	require.Equal(t, "photo.jpg", req.ImagePath)
}

func TestNewDetectionRequest_MissingArgument(t *testing.T) {
	_, err := NewDetectionRequest([]string{"autotag"})
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = NewDetectionRequest([]string{"autotag", ""})
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = NewDetectionRequest(nil)
	require.ErrorIs(t, err, ErrMissingArgument)
}
