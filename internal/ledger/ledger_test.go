package ledger

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashbook/internal/journal"
	"github.com/cleared-dev/cashbook/internal/model"
	"github.com/cleared-dev/cashbook/internal/period"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC)
}

func tx(id string, when time.Time, amount string, typ model.TransactionType, method model.PaymentMethod) model.Transaction {
	return model.Transaction{ID: id, Date: when, Amount: decimal.RequireFromString(amount), Type: typ, Method: method}
}

func assertBalance(t *testing.T, b Balances, a model.Account, want string) {
	t.Helper()
	assert.Equal(t, want, b.Get(a).StringFixed(2), "balance of %s", a)
}

func TestCompute_NormalBalanceSigns(t *testing.T) {
	txs := []model.Transaction{
		tx("1", day(2025, 3, 1), "500", model.TypeIncome, model.MethodCash),
		tx("2", day(2025, 3, 2), "200", model.TypeIncome, model.MethodCard),
		tx("3", day(2025, 3, 3), "120", model.TypeExpense, model.MethodCash),
		tx("4", day(2025, 3, 4), "80", model.TypeExpense, model.MethodCard),
	}
	b, err := Compute(txs)
	require.NoError(t, err)

	assertBalance(t, b, model.Cash, "380.00")
	assertBalance(t, b, model.AccountsReceivable, "200.00")
	assertBalance(t, b, model.AccountsPayable, "80.00")
	assertBalance(t, b, model.Revenue, "700.00")
	assertBalance(t, b, model.Expense, "200.00")
	assertBalance(t, b, model.RetainedEarnings, "0.00")
	assert.Equal(t, "500.00", b.NetIncome().StringFixed(2))
}

func TestCompute_EveryAccountPresent(t *testing.T) {
	b, err := Compute(nil)
	require.NoError(t, err)
	for _, a := range model.Accounts {
		v, ok := b[a]
		require.True(t, ok, "%s should be present", a)
		assert.True(t, v.IsZero())
	}
	assert.True(t, b.NetIncome().IsZero())
}

func TestCompute_DecimalPrecision(t *testing.T) {
	var txs []model.Transaction
	for i := 0; i < 1000; i++ {
		txs = append(txs, tx("t", day(2025, 1, 1), "0.10", model.TypeIncome, model.MethodCash))
	}
	b, err := Compute(txs)
	require.NoError(t, err)
	assert.True(t, b.Get(model.Cash).Equal(decimal.NewFromInt(100)))
}

func TestCompute_OrderIndependent(t *testing.T) {
	var txs []model.Transaction
	methods := []model.PaymentMethod{model.MethodCash, model.MethodCard}
	types := []model.TransactionType{model.TypeIncome, model.TypeExpense}
	for i := 0; i < 40; i++ {
		amt := decimal.NewFromInt(int64(i*37%101 + 1)).Div(decimal.NewFromInt(4))
		txs = append(txs, model.Transaction{
			ID:     string(rune('a' + i%26)),
			Date:   day(2025, 1+i%6, 1+i%28),
			Amount: amt,
			Type:   types[i%2],
			Method: methods[(i/2)%2],
		})
	}
	want, err := Compute(txs)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(7))
	for n := 0; n < 5; n++ {
		shuffled := make([]model.Transaction, len(txs))
		copy(shuffled, txs)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := Compute(shuffled)
		require.NoError(t, err)
		for _, a := range model.Accounts {
			assert.True(t, want.Get(a).Equal(got.Get(a)), "account %s", a)
		}
	}
}

func TestFlowAndAsOf(t *testing.T) {
	txs := []model.Transaction{
		tx("jan", day(2025, 1, 15), "20000", model.TypeIncome, model.MethodCash),
		tx("feb", day(2025, 2, 15), "30000", model.TypeIncome, model.MethodCash),
	}
	jan := period.Month(2025, time.January, time.UTC)
	feb := period.Month(2025, time.February, time.UTC)

	flow, err := Flow(txs, jan)
	require.NoError(t, err)
	assertBalance(t, flow, model.Revenue, "20000.00")

	cum, err := AsOf(txs, feb.End)
	require.NoError(t, err)
	assertBalance(t, cum, model.Cash, "50000.00")

	cash, err := CashAt(txs, jan.End)
	require.NoError(t, err)
	assert.Equal(t, "20000.00", cash.StringFixed(2))
}

func TestComputeWhere_InvalidOutsideWindowFails(t *testing.T) {
	txs := []model.Transaction{
		tx("ok", day(2025, 1, 15), "1", model.TypeIncome, model.MethodCash),
		tx("bad", day(2025, 6, 1), "1", "loan", model.MethodCash),
	}
	_, err := Flow(txs, period.Month(2025, time.January, time.UTC))
	require.Error(t, err)

	var ite *journal.InvalidTransactionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, 1, ite.Index)
	assert.Equal(t, "bad", ite.ID)
}

func TestCashAt_Error(t *testing.T) {
	_, err := CashAt([]model.Transaction{tx("bad", day(2025, 1, 1), "-5", model.TypeIncome, model.MethodCash)}, day(2025, 2, 1))
	assert.ErrorIs(t, err, journal.ErrInvalidTransaction)
}
