package service

import (
	"testing"

	"github.com/benx421/backoffice/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_OpenAccount(t *testing.T) {
	tests := []struct {
		name        string
		holder      string
		deposit     string
		wantEntry   bool
		wantBalance string
		wantCode    string
	}{
		{name: "with opening deposit", holder: "Ada", deposit: "150.25", wantEntry: true, wantBalance: "150.25"},
		{name: "zero deposit records nothing", holder: "Ada", deposit: "0", wantBalance: "0"},
		{name: "negative deposit", holder: "Ada", deposit: "-1", wantCode: ErrCodeValidation},
		{name: "sub-cent deposit", holder: "Ada", deposit: "1.234", wantCode: ErrCodeValidation},
		{name: "blank holder", holder: " ", deposit: "10", wantCode: ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)

			account, entry, err := e.OpenAccount(tt.holder, models.AccountTypeSavings, dec(tt.deposit))
			if tt.wantCode != "" {
				requireCode(t, err, tt.wantCode)
				assert.Empty(t, e.Accounts.List())
				return
			}

			require.NoError(t, err)
			assertMoney(t, tt.wantBalance, account.Balance)
			if tt.wantEntry {
				require.NotNil(t, entry)
				assert.Equal(t, "Initial deposit", entry.Description)
				assert.Equal(t, int64(1), entry.ID)
				assert.Equal(t, 1, e.Ledger.Count())
			} else {
				assert.Nil(t, entry)
				assert.Zero(t, e.Ledger.Count())
			}
		})
	}
}

func TestEngine_Summary(t *testing.T) {
	e := newTestEngine(t)
	a := openAccount(t, e, "Ada", "1000")
	b := openAccount(t, e, "Alan", "500")

	_, err := e.Ledger.RecordTransfer(a.ID, b.ID, dec("100"))
	require.NoError(t, err)
	loan, err := e.Loans.Originate(b.ID, models.LoanTypeAuto, dec("2000"), 1)
	require.NoError(t, err)
	_, err = e.Loans.ApplyPayment(loan.ID, dec("500"))
	require.NoError(t, err)
	card, err := e.Cards.Issue(a.ID, models.CardTypeCredit)
	require.NoError(t, err)
	_, err = e.Cards.Issue(a.ID, models.CardTypeGold)
	require.NoError(t, err)
	_, err = e.Cards.SetStatus(card.ID, models.CardStatusInactive)
	require.NoError(t, err)

	summary := e.Summary()
	assert.Equal(t, 2, summary.TotalAccounts)
	assertMoney(t, "3000", summary.TotalBalance)
	assert.Equal(t, 6, summary.TotalTransactions)
	assert.Equal(t, 1, summary.ActiveLoans)
	assertMoney(t, "1500", summary.OutstandingLoanBalance)
	assert.Equal(t, 1, summary.ActiveCards)
}
