package repository

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Tables names every DynamoDB table the repositories use. Zero fields fall
// back to the defaults below.
type Tables struct {
	Quotes        string
	History       string
	Numbers       string
	Counters      string
	Users         string
	Companies     string
	Notifications string
}

const (
	defaultQuotesTable        = "quotes"
	defaultHistoryTable       = "quote_history"
	defaultNumbersTable       = "quote_numbers"
	defaultCountersTable      = "quote_counters"
	defaultUsersTable         = "users"
	defaultCompaniesTable     = "companies"
	defaultNotificationsTable = "notifications"

	historyByQuoteIndex          = "quote_id-index"
	notificationByRecipientIndex = "recipient_id-index"
)

func (t Tables) withDefaults() Tables {
	t.Quotes = stringDefault(t.Quotes, defaultQuotesTable)
	t.History = stringDefault(t.History, defaultHistoryTable)
	t.Numbers = stringDefault(t.Numbers, defaultNumbersTable)
	t.Counters = stringDefault(t.Counters, defaultCountersTable)
	t.Users = stringDefault(t.Users, defaultUsersTable)
	t.Companies = stringDefault(t.Companies, defaultCompaniesTable)
	t.Notifications = stringDefault(t.Notifications, defaultNotificationsTable)
	return t
}

func stringDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// cancelledByCondition reports whether a transactional write was cancelled
// because the condition of the item at index failed.
func cancelledByCondition(err error, index int) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	if index < 0 || index >= len(tce.CancellationReasons) {
		return false
	}
	return aws.ToString(tce.CancellationReasons[index].Code) == "ConditionalCheckFailed"
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}
