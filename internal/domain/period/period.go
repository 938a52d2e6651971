// Package period traduce tokens de período (7days, month, ...) a rangos de
// fechas [Start, End) y al rango inmediatamente anterior de igual longitud,
// usado para comparar crecimiento entre períodos.
package period

import (
	"time"

	"github.com/yacouba/Boutique-api/internal/domain"
)

// Token período relativo con nombre.
type Token string

// Tokens soportados.
const (
	Last7Days    Token = "7days"
	Last30Days   Token = "30days"
	Last90Days   Token = "90days"
	Last12Months Token = "12months"
	Today        Token = "today"
	Week         Token = "week"
	Month        Token = "month"
	Quarter      Token = "quarter"
	Year         Token = "year"
)

// Range rango semiabierto [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// Previous devuelve el rango de igual longitud inmediatamente anterior.
func (r Range) Previous() Range {
	length := r.End.Sub(r.Start)
	return Range{Start: r.Start.Add(-length), End: r.Start}
}

// Resolve calcula el rango del token respecto a now.
// Los tokens "rodantes" (7days, 30days, 90days, 12months) terminan en now;
// los de calendario (today, week, month, quarter, year) parten del inicio
// del período de calendario en curso. Token desconocido → ErrInvalidPeriod.
func Resolve(tok Token, now time.Time) (Range, error) {
	switch tok {
	case Last7Days:
		return Range{Start: now.AddDate(0, 0, -7), End: now}, nil
	case Last30Days:
		return Range{Start: now.AddDate(0, 0, -30), End: now}, nil
	case Last90Days:
		return Range{Start: now.AddDate(0, 0, -90), End: now}, nil
	case Last12Months:
		return Range{Start: now.AddDate(0, -12, 0), End: now}, nil
	case Today:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 0, 1)}, nil
	case Week:
		// Semana que inicia el lunes
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start := day.AddDate(0, 0, -(weekday - 1))
		return Range{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case Month:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case Quarter:
		q := (int(now.Month()) - 1) / 3
		start := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 3, 0)}, nil
	case Year:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}
	return Range{}, domain.ErrInvalidPeriod
}
