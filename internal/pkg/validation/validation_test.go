package validation_test

import (
	"testing"

	"account-service/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
)

type customerBidField struct {
	Bid string `validate:"customer_bid"`
}

type accountNameField struct {
	Name string `validate:"account_name"`
}

type sortCodeField struct {
	SortCode string `validate:"sort_code"`
}

func TestCustomerBidTag(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(customerBidField{Bid: "CU123456789012"}))

	for _, bid := range []string{
		"",
		"CU12345678901",   // eleven digits
		"CU1234567890123", // thirteen digits
		"AC123456789012",  // wrong prefix
		"cu123456789012",  // lowercase prefix
		"CU12345678901a",
	} {
		assert.Error(t, v.Struct(customerBidField{Bid: bid}), "expected %q to fail", bid)
	}
}

func TestAccountNameTag(t *testing.T) {
	v := validation.New()

	for _, name := range []string{
		"daily.account",
		"savings_account-one",
		"..........",
	} {
		assert.NoError(t, v.Struct(accountNameField{Name: name}), "expected %q to pass", name)
	}

	for _, name := range []string{
		"short",          // under ten characters
		"Daily.Account1", // uppercase and digit
		"has space here",
	} {
		assert.Error(t, v.Struct(accountNameField{Name: name}), "expected %q to fail", name)
	}
}

func TestSortCodeTag(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(sortCodeField{SortCode: "123456"}))
	assert.NoError(t, v.Struct(sortCodeField{SortCode: "12345678"}))

	for _, code := range []string{"12345", "123456789", "12-34-56", ""} {
		assert.Error(t, v.Struct(sortCodeField{SortCode: code}), "expected %q to fail", code)
	}
}

func TestMatchesCustomerBid(t *testing.T) {
	assert.True(t, validation.MatchesCustomerBid("CU123456789012"))
	assert.False(t, validation.MatchesCustomerBid("AC123456789012"))
	assert.False(t, validation.MatchesCustomerBid("CU1234"))
}

func TestMatchesAccountBid(t *testing.T) {
	assert.True(t, validation.MatchesAccountBid("AC123456789012"))
	assert.False(t, validation.MatchesAccountBid("CU123456789012"))
	assert.False(t, validation.MatchesAccountBid("AC12345678901"))
}
