package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func at(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func TestRoundTrip(t *testing.T) {
	txs := []model.Transaction{
		{
			ID:          "in-1718365800000-af3c",
			ChildID:     "child-1",
			Amount:      dec("10.00"),
			Description: "birthday gift",
			OccurredAt:  at("2025-06-14T10:30:00-05:00"),
			Balance:     dec("10.00"),
		},
		{
			ID:          "ex-1718372100000-9b2e",
			ChildID:     "child-1",
			Amount:      dec("-3.50"),
			Description: "snack, with a comma",
			OccurredAt:  at("2025-06-14T12:15:00-05:00"),
			Balance:     dec("6.50"),
		},
	}

	var buf bytes.Buffer
	err := WriteTransactions(&buf, txs)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "id,"))

	got, err := ReadTransactions("test", &buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range txs {
		assert.Equal(t, txs[i].ID, got[i].ID)
		assert.Equal(t, txs[i].ChildID, got[i].ChildID)
		assert.True(t, txs[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
		assert.Equal(t, txs[i].Description, got[i].Description)
		assert.True(t, txs[i].OccurredAt.Equal(got[i].OccurredAt), "timestamp mismatch row %d", i)
		assert.True(t, txs[i].Balance.Equal(got[i].Balance), "balance mismatch row %d", i)
	}
}

func TestReadLegacyDateOnly(t *testing.T) {
	raw := Header + "\n" +
		"in-1-aaaa,child-1,5.00,allowance,2024-03-02,5.00\n"

	got, err := ReadTransactions("legacy", strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].OccurredAt.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestReadMalformedDate(t *testing.T) {
	raw := Header + "\n" +
		"in-1-aaaa,child-1,5.00,allowance,03/02/2024,5.00\n"

	_, err := ReadTransactions("bad", strings.NewReader(raw))
	require.Error(t, err)

	var mre *store.MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, "bad", mre.Path)
	assert.Equal(t, 2, mre.Row)
}

func TestReadMalformedAmount(t *testing.T) {
	raw := Header + "\n" +
		"in-1-aaaa,child-1,5.00,ok,2024-03-02,5.00\n" +
		"in-2-bbbb,child-1,five,nope,2024-03-03,10.00\n"

	_, err := ReadTransactions("bad", strings.NewReader(raw))
	require.Error(t, err)

	var mre *store.MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 3, mre.Row, "error should name the offending row")
}

func TestReadEmpty(t *testing.T) {
	got, err := ReadTransactions("empty", strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
