// Package settings is the string key/value configuration bag. Storage
// is untyped strings; this package layers typed accessors over the
// known keys so callers never parse values themselves.
package settings

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/adityarahman/celengan/internal"
)

const (
	KeyBaseCurrency    = "base_currency"
	KeyTheme           = "theme"
	KeyHourlyRateMinor = "hourly_rate_minor"
	KeyHoursPerDay     = "hours_per_day"

	// last-viewed markers, suffixed by period key, e.g. last_viewed_wrap_2026-07
	KeyLastViewedPrefix = "last_viewed_"
)

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Repository is the generic persistence under the typed accessors.
type Repository interface {
	Get(key string) (string, bool, error)
	GetAll() (map[string]string, error)
	Set(key, value string) error
}

// BasePinner re-pins the base currency's rate to 1 after a base
// change. Satisfied by the currency service.
type BasePinner interface {
	PinBase(code string) error
}

type Service struct {
	repo     Repository
	pinner   BasePinner
	defaults Defaults
	logger   *slog.Logger
}

// Defaults fill in when a key has never been written.
type Defaults struct {
	BaseCurrency string
	HoursPerDay  int
}

func NewService(repo Repository, defaults Defaults, logger *slog.Logger) *Service {
	return &Service{repo: repo, defaults: defaults, logger: logger}
}

// AttachPinner wires the currency service in after construction; the
// two services reference each other, so one side attaches late.
func (s *Service) AttachPinner(pinner BasePinner) {
	s.pinner = pinner
}

func (s *Service) Get(key string) (*string, error) {
	value, ok, err := s.repo.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &value, nil
}

func (s *Service) GetAll() (map[string]string, error) {
	return s.repo.GetAll()
}

func (s *Service) Set(key, value string) error {
	if key == "" {
		return internal.NewValidationError("setting key is required", internal.ErrCodeValidationFailed)
	}
	return s.repo.Set(key, value)
}

func (s *Service) BaseCurrency() (string, error) {
	value, ok, err := s.repo.Get(KeyBaseCurrency)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return s.defaults.BaseCurrency, nil
	}
	return strings.ToUpper(value), nil
}

// SetBaseCurrency changes the reporting currency and pins the matching
// currency row's rate to 1.
func (s *Service) SetBaseCurrency(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return internal.NewValidationError("base currency must be a 3-letter code", internal.ErrCodeInvalidCurrency)
	}
	if err := s.repo.Set(KeyBaseCurrency, code); err != nil {
		return err
	}
	if s.pinner != nil {
		if err := s.pinner.PinBase(code); err != nil {
			return err
		}
	}
	s.logger.Info("base currency changed", "code", code)
	return nil
}

func (s *Service) Theme() (string, error) {
	value, ok, err := s.repo.Get(KeyTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return ThemeSystem, nil
	}
	return value, nil
}

func (s *Service) SetTheme(theme string) error {
	switch theme {
	case ThemeSystem, ThemeLight, ThemeDark:
		return s.repo.Set(KeyTheme, theme)
	}
	return internal.NewValidationError("unknown theme", internal.ErrCodeValidationFailed)
}

// HourlyRateMinor is the user-fixed hourly rate, if set. Nil means
// "derive from incomes"; zero is a valid explicit rate.
func (s *Service) HourlyRateMinor() (*int64, error) {
	value, ok, err := s.repo.Get(KeyHourlyRateMinor)
	if err != nil {
		return nil, err
	}
	if !ok || value == "" {
		return nil, nil
	}
	rate, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		s.logger.Warn("malformed hourly_rate_minor setting ignored", "value", value)
		return nil, nil
	}
	return &rate, nil
}

func (s *Service) SetHourlyRateMinor(rate int64) error {
	if rate < 0 {
		return internal.NewValidationError("hourly rate cannot be negative", internal.ErrCodeInvalidAmount)
	}
	return s.repo.Set(KeyHourlyRateMinor, strconv.FormatInt(rate, 10))
}

func (s *Service) HoursPerDay() (int, error) {
	value, ok, err := s.repo.Get(KeyHoursPerDay)
	if err != nil {
		return 0, err
	}
	if ok {
		if hours, perr := strconv.Atoi(value); perr == nil && hours >= 1 && hours <= 24 {
			return hours, nil
		}
		s.logger.Warn("malformed hours_per_day setting ignored", "value", value)
	}
	return s.defaults.HoursPerDay, nil
}

func (s *Service) SetHoursPerDay(hours int) error {
	if hours < 1 || hours > 24 {
		return internal.NewValidationError("hours_per_day must be between 1 and 24", internal.ErrCodeValidationFailed)
	}
	return s.repo.Set(KeyHoursPerDay, strconv.Itoa(hours))
}

func (s *Service) LastViewed(marker string) (*string, error) {
	return s.Get(KeyLastViewedPrefix + marker)
}

func (s *Service) SetLastViewed(marker, value string) error {
	return s.repo.Set(KeyLastViewedPrefix+marker, value)
}
