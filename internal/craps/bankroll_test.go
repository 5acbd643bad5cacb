package craps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankroll(t *testing.T) {
	_, err := NewBankroll(-1)
	require.Error(t, err)

	b, err := NewBankroll(100)
	require.NoError(t, err)

	require.NoError(t, b.Deposit(50))
	assert.Equal(t, 150, b.Size())

	require.NoError(t, b.Withdraw(150))
	assert.Equal(t, 0, b.Size())

	err = b.Withdraw(1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 0, b.Size())

	assert.Error(t, b.Deposit(-5))
	assert.Error(t, b.Withdraw(-5))
}

func TestBankrollUpdate(t *testing.T) {
	b, err := NewBankroll(100)
	require.NoError(t, err)

	require.NoError(t, b.Update(-30))
	assert.Equal(t, 70, b.Size())
	require.NoError(t, b.Update(10))
	assert.Equal(t, 80, b.Size())
	require.NoError(t, b.Update(0))
	assert.Equal(t, 80, b.Size())

	assert.ErrorIs(t, b.Update(-81), ErrInsufficientFunds)
	assert.Equal(t, 80, b.Size())
	assert.True(t, b.Covers(80))
	assert.False(t, b.Covers(81))
}
