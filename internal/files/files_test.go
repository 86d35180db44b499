package files

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensehq/dedupe/internal/apierror"
)

const csvExport = `id,date,amount,vendor,description
txn_1,2025-10-20,150.00,Marriott Hotels,Hotel stay for 1 night
txn_2,2025-10-25T09:30:00Z,50.00,Starbucks,Coffee and pastries
,2025-10-26,12.40,,Parking
`

const jsonExport = `[
  {"id": "txn_1", "date": "2025-10-20T00:00:00Z", "amount": 150.00, "vendor": "Marriott Hotels", "description": "Hotel stay for 1 night"},
  {"id": "txn_2", "date": "2025-10-25T09:30:00Z", "amount": 50.00, "vendor": "Starbucks", "description": "Coffee and pastries"}
]`

func TestLoadTransactionsCSV(t *testing.T) {
	transactions, err := LoadTransactions(strings.NewReader(csvExport))

	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, "txn_1", transactions[0].TransactionID)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), transactions[0].Date)
	assert.Equal(t, 150.00, transactions[0].Amount)
	assert.Equal(t, "Marriott Hotels", transactions[0].Vendor)
	assert.Equal(t, "Hotel stay for 1 night", transactions[0].Description)

	// RFC3339 timestamps are accepted alongside bare dates
	assert.Equal(t, 9, transactions[1].Date.Hour())

	// rows without an id are assigned one
	assert.Contains(t, transactions[2].TransactionID, "txn_")
	assert.Empty(t, transactions[2].Vendor)
}

func TestLoadTransactionsJSON(t *testing.T) {
	transactions, err := LoadTransactions(strings.NewReader(jsonExport))

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "Starbucks", transactions[1].Vendor)
	assert.Equal(t, 50.00, transactions[1].Amount)
}

func TestLoadTransactionsEquivalentFormats(t *testing.T) {
	csvTxns, err := LoadTransactions(strings.NewReader("id,date,amount,vendor,description\ntxn_1,2025-10-20,150.00,Marriott Hotels,Hotel stay\n"))
	require.NoError(t, err)
	jsonTxns, err := LoadTransactions(strings.NewReader(`[{"id":"txn_1","date":"2025-10-20T00:00:00Z","amount":150.00,"vendor":"Marriott Hotels","description":"Hotel stay"}]`))
	require.NoError(t, err)

	require.Len(t, csvTxns, 1)
	require.Len(t, jsonTxns, 1)
	assert.Equal(t, csvTxns[0].Key(), jsonTxns[0].Key())
}

func TestLoadTransactionsBadDateFailsWholeLoad(t *testing.T) {
	export := "id,date,amount,vendor,description\ntxn_1,2025-10-20,150.00,Marriott,Hotel\ntxn_2,not-a-date,50.00,Starbucks,Coffee\n"

	transactions, err := LoadTransactions(strings.NewReader(export))

	require.Error(t, err)
	assert.Nil(t, transactions)
	assert.Equal(t, apierror.ErrInvalidInput, apierror.CodeOf(err))
	assert.Contains(t, err.Error(), "row 3")
}

func TestLoadTransactionsBadAmount(t *testing.T) {
	export := "id,date,amount,vendor,description\ntxn_1,2025-10-20,lots,Marriott,Hotel\n"

	_, err := LoadTransactions(strings.NewReader(export))

	require.Error(t, err)
	assert.Equal(t, apierror.ErrInvalidInput, apierror.CodeOf(err))
}

func TestLoadTransactionsMissingDescription(t *testing.T) {
	export := `[{"id":"txn_1","date":"2025-10-20T00:00:00Z","amount":150.00}]`

	_, err := LoadTransactions(strings.NewReader(export))

	require.Error(t, err)
	assert.Equal(t, apierror.ErrInvalidInput, apierror.CodeOf(err))
}

func TestLoadTransactionsMissingHeaderColumn(t *testing.T) {
	export := "id,date,vendor,description\ntxn_1,2025-10-20,Marriott,Hotel\n"

	_, err := LoadTransactions(strings.NewReader(export))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestLoadTransactionsUnknownFormat(t *testing.T) {
	_, err := LoadTransactions(strings.NewReader("just some text without structure"))

	require.Error(t, err)
	assert.Equal(t, apierror.ErrInvalidInput, apierror.CodeOf(err))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-10-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("2025-10-20T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, 15, parsed.Hour())

	_, err = ParseDate("20/10/2025")
	assert.Error(t, err)
}
