package entity

import (
	"fmt"

	"github.com/jhoicas/erp-posting/internal/domain"
)

// NumberSeries contador por (empresa, código).
type NumberSeries struct {
	ID         string
	CompanyID  string
	Code       string
	Prefix     string
	NextNumber int64
	MinWidth   int
}

// Format devuelve prefix + número rellenado con ceros hasta MinWidth.
func (s *NumberSeries) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.MinWidth, n)
}

// Take consume el número actual y avanza el contador. Un contador menor que
// 1 es un dato corrupto de la serie.
func (s *NumberSeries) Take() (string, error) {
	if s.NextNumber < 1 {
		return "", domain.MissingConfig("la serie %q tiene el contador en %d", s.Code, s.NextNumber)
	}
	n := s.NextNumber
	s.NextNumber++
	return s.Format(n), nil
}
