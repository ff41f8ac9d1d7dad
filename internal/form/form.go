// Package form holds the request forms and their validation rules. Each
// rule produces a FieldError instead of failing fast, a submission gets
// all of its problems reported at once.
package form

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/qs-lzh/train-ticket/internal/model"
)

type FieldError struct {
	Field   string
	Message string
}

type FieldErrors []FieldError

func (e FieldErrors) Has() bool { return len(e) > 0 }

// For returns the first message recorded for a field, templates use it to
// render inline errors.
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var (
	nameRe   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

func validateName(errs FieldErrors, field, name string, max int) FieldErrors {
	name = strings.TrimSpace(name)
	if name == "" {
		return append(errs, FieldError{field, "Name is required"})
	}
	if len(name) < 2 || len(name) > max {
		return append(errs, FieldError{field, "Name must be between 2 and " + strconv.Itoa(max) + " characters"})
	}
	if !nameRe.MatchString(name) {
		return append(errs, FieldError{field, "Name can only contain letters and spaces"})
	}
	return errs
}

type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f *RegisterForm) Validate() FieldErrors {
	var errs FieldErrors
	errs = validateName(errs, "name", f.Name, 120)

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case len(email) > 120:
		errs = append(errs, FieldError{"email", "Email must be less than 120 characters"})
	case !emailRe.MatchString(email):
		errs = append(errs, FieldError{"email", "Please enter a valid email address"})
	}

	switch {
	case f.Password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case len(f.Password) < 8 || len(f.Password) > 128:
		errs = append(errs, FieldError{"password", "Password must be between 8 and 128 characters"})
	case !passwordComplex(f.Password):
		errs = append(errs, FieldError{"password", "Password must contain at least one uppercase letter, one lowercase letter, and one number"})
	}
	return errs
}

func passwordComplex(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f *LoginForm) Validate() FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(f.Email) == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	}
	if f.Password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	}
	return errs
}

type BookingForm struct {
	TrainID         uint   `form:"train_id"`
	PassengerName   string `form:"passenger_name"`
	PassengerAge    int    `form:"passenger_age"`
	PassengerGender string `form:"passenger_gender"`
	TravelDate      string `form:"travel_date"`
	SeatClass       string `form:"seat_class"`
}

func (f *BookingForm) Validate() FieldErrors {
	var errs FieldErrors
	if f.TrainID == 0 {
		errs = append(errs, FieldError{"train_id", "Please select a train"})
	}
	errs = validateName(errs, "passenger_name", f.PassengerName, 120)
	if f.PassengerAge < 1 || f.PassengerAge > 120 {
		errs = append(errs, FieldError{"passenger_age", "Age must be between 1 and 120"})
	}
	if !model.Gender(f.PassengerGender).Valid() {
		errs = append(errs, FieldError{"passenger_gender", "Please select gender"})
	}
	if _, err := f.Date(); err != nil {
		errs = append(errs, FieldError{"travel_date", "Travel date is required"})
	}
	if !model.SeatClass(f.SeatClass).Valid() {
		errs = append(errs, FieldError{"seat_class", "Please select seat class"})
	}
	return errs
}

func (f *BookingForm) Date() (time.Time, error) {
	return time.Parse("2006-01-02", f.TravelDate)
}

type PaymentForm struct {
	CardName   string `form:"card_name"`
	CardNumber string `form:"card_number"`
	Expiry     string `form:"expiry"`
	CVV        string `form:"cvv"`
}

// Validate checks format only. There is no real authorization behind this
// form, a well-formed card is accepted.
func (f *PaymentForm) Validate() FieldErrors {
	var errs FieldErrors
	errs = validateName(errs, "card_name", f.CardName, 100)

	switch {
	case f.CardNumber == "":
		errs = append(errs, FieldError{"card_number", "Card number is required"})
	case !digitsRe.MatchString(f.CardNumber):
		errs = append(errs, FieldError{"card_number", "Card number must contain only digits"})
	case len(f.CardNumber) < 13 || len(f.CardNumber) > 19:
		errs = append(errs, FieldError{"card_number", "Card number must be between 13 and 19 digits"})
	}

	if !expiryRe.MatchString(f.Expiry) {
		errs = append(errs, FieldError{"expiry", "Please enter expiry in MM/YY format"})
	}

	switch {
	case f.CVV == "":
		errs = append(errs, FieldError{"cvv", "CVV is required"})
	case !digitsRe.MatchString(f.CVV) || len(f.CVV) < 3 || len(f.CVV) > 4:
		errs = append(errs, FieldError{"cvv", "CVV must be 3 or 4 digits"})
	}
	return errs
}

type ProfileForm struct {
	Name string `form:"name"`
}

func (f *ProfileForm) Validate() FieldErrors {
	return validateName(nil, "name", f.Name, 120)
}
