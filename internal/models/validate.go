package models

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("finite", validateFinite)
	})
	return validate
}

// validateFinite rejects NaN and infinite values
func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks that every number is finite and that counts, minutes and
// percentages are in range
func (m MatchSnapshot) Validate() error {
	return validateInput(m)
}

// Validate checks the pre-match inputs
func (p PreMatchSnapshot) Validate() error {
	return validateInput(p)
}

// Validate checks that the quoted price is a finite number
func (q MarketQuote) Validate() error {
	return validateInput(q)
}

func validateInput(s interface{}) error {
	err := inputValidator().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidNumber, strings.Join(fields, ", "))
}
