package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageTensor_AtSet(t *testing.T) {
	tensor := NewImageTensor(2, 3, 3)
	tensor.Set(1, 2, 0, 0.5)
	require.InDelta(t, 0.5, tensor.At(1, 2, 0), 1e-6)
	require.Zero(t, tensor.At(0, 0, 0))
}

func TestImageTensor_Validate(t *testing.T) {
	require.NoError(t, NewImageTensor(4, 4, 3).Validate())

	broken := &ImageTensor{Data: make([]float32, 5), Height: 4, Width: 4, Channels: 3}
	require.Error(t, broken.Validate())

	empty := &ImageTensor{Height: 0, Width: 4, Channels: 3}
	require.Error(t, empty.Validate())
}
