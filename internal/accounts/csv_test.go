package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.ChartAccount{
		{Code: 1010, Account: model.Cash, Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash on hand"},
		{Code: 5010, Account: model.Expense, Name: "General Expense", Type: model.AccountTypeExpense},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, accounts, got)
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnmarshalAccount_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"field count", []string{"1010", "Cash"}, "expected 5 fields"},
		{"bad code", []string{"abc", "Cash", "Cash", "asset", ""}, "parsing account_code"},
		{"unknown account", []string{"1300", "Inventory", "Inventory", "asset", ""}, "unknown account"},
		{"type mismatch", []string{"1010", "Cash", "Cash", "liability", ""}, "has type asset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalAccount(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
