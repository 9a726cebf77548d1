package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"docvault-api/internal/interface/api/rest/dto/user"
)

const (
	DateLayout = "2006-01-02"

	defaultLimit = 10
	maxLimit     = 100
	maxNameLen   = 100
	maxEmailLen  = 254
)

var minDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

func ParseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("must be a positive integer")
	}
	return id, nil
}

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return 0, errors.New("invalid page")
	}
	return p, nil
}

func ValidateLimit(limit string) (int, error) {
	if limit == "" {
		return defaultLimit, nil
	}
	l, err := strconv.Atoi(limit)
	if err != nil || l < 1 || l > maxLimit {
		return 0, errors.New("invalid limit")
	}
	return l, nil
}

// ValidateDate parses YYYY-MM-DD and requires 1900-01-01 <= date <= today (UTC).
func ValidateDate(s string, now time.Time) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("date must be in YYYY-MM-DD format")
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if d.Before(minDate) || d.After(today) {
		return time.Time{}, errors.New("date out of range")
	}
	return d, nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return errors.New("email is too long")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email format")
	}
	return nil
}

func ValidateUserInfo(r user.InfoRequest, now time.Time) map[string]string {
	errs := make(map[string]string)

	checkLen(errs, "first_name", r.FirstName, maxNameLen, true)
	checkLen(errs, "last_name", r.LastName, maxNameLen, true)

	if strings.TrimSpace(r.DateOfBirth) == "" {
		errs["date_of_birth"] = "date_of_birth is required"
	} else if _, err := ValidateDate(r.DateOfBirth, now); err != nil {
		errs["date_of_birth"] = err.Error()
	}

	if r.PhysicalAddress == nil {
		errs["physical_address"] = "physical_address is required"
	} else {
		a := r.PhysicalAddress
		checkLen(errs, "physical_address.address1", a.Address1, 200, true)
		checkLen(errs, "physical_address.address2", a.Address2, 200, false)
		checkLen(errs, "physical_address.city", a.City, 50, true)
		checkLen(errs, "physical_address.province", a.Province, 50, true)
		checkLen(errs, "physical_address.postal", a.Postal, 20, true)
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func checkLen(errs map[string]string, field, value string, max int, required bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			errs[field] = field + " is required"
		}
		return
	}
	if utf8.RuneCountInString(value) > max {
		errs[field] = field + " must be at most " + strconv.Itoa(max) + " characters"
	}
}
