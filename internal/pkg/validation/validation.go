// Package validation holds the shared request validator and the custom
// pattern rules that go beyond validator's built in tags.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	customerBidRegex = regexp.MustCompile(`^CU[0-9]{12}$`)
	accountBidRegex  = regexp.MustCompile(`^AC[0-9]{12}$`)
	accountNameRegex = regexp.MustCompile(`^[a-z._-]{10,50}$`)
	sortCodeRegex    = regexp.MustCompile(`^[0-9]{6,8}$`)
)

// New builds a validator with the service's custom tags registered:
// customer_bid, account_bid, account_name and sort_code.
func New() *validator.Validate {
	v := validator.New()

	mustRegister(v, "customer_bid", customerBidRegex)
	mustRegister(v, "account_bid", accountBidRegex)
	mustRegister(v, "account_name", accountNameRegex)
	mustRegister(v, "sort_code", sortCodeRegex)

	return v
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// MatchesCustomerBid reports whether s is a well formed customer business id.
func MatchesCustomerBid(s string) bool {
	return customerBidRegex.MatchString(s)
}

// MatchesAccountBid reports whether s is a well formed account business id.
func MatchesAccountBid(s string) bool {
	return accountBidRegex.MatchString(s)
}
