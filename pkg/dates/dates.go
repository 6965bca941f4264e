// Package dates contiene cálculos de calendario (diferencias, inicio y fin de
// mes, edad) y el formato ISO-8601 con precisión configurable.
package dates

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidRange se devuelve cuando la fecha inicial es posterior a la de comparación.
var ErrInvalidRange = errors.New("The 'dateToCompare' should be greater than or equal to 'date'.")

// ErrInvalidDecimalPlaces se devuelve cuando la precisión pedida está fuera de 0..7.
var ErrInvalidDecimalPlaces = errors.New("dates: cantidad de decimales inválida")

func validateRange(date, compare time.Time) error {
	if date.After(compare) {
		return ErrInvalidRange
	}
	return nil
}

// DaysBetween días completos entre date y compare.
func DaysBetween(date, compare time.Time) (int, error) {
	if err := validateRange(date, compare); err != nil {
		return 0, err
	}
	return wholeDays(date, compare), nil
}

// wholeDays evita time.Duration, que no cubre rangos de más de 292 años.
func wholeDays(from, to time.Time) int {
	secs := to.Unix() - from.Unix()
	if to.Nanosecond() < from.Nanosecond() {
		secs--
	}
	return int(secs / 86400)
}

// MonthsBetween meses completos entre date y compare, considerando el día del mes.
func MonthsBetween(date, compare time.Time) (int, error) {
	if err := validateRange(date, compare); err != nil {
		return 0, err
	}
	months := (compare.Year()*12 + int(compare.Month())) - (date.Year()*12 + int(date.Month()))
	daysInEndMonth := -float64(wholeDays(compare, addMonths(compare, 1)))
	total := float64(months) + float64(date.Day()-compare.Day())/daysInEndMonth
	return int(math.Trunc(total)), nil
}

// YearsBetween años entre date y compare, contados como bloques de 365 días.
func YearsBetween(date, compare time.Time) (int, error) {
	days, err := DaysBetween(date, compare)
	if err != nil {
		return 0, err
	}
	return days / 365, nil
}

// FirstDayOfMonth primer día del mes a medianoche.
func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// LastDayOfMonth último día del mes a medianoche.
func LastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), daysIn(t.Year(), t.Month()), 0, 0, 0, 0, t.Location())
}

func IsFirstDayOfMonth(t time.Time) bool { return t.Day() == 1 }

func IsLastDayOfMonth(t time.Time) bool { return t.Day() == daysIn(t.Year(), t.Month()) }

// DaysToEndOfMonth días que faltan hasta el último día del mes.
func DaysToEndOfMonth(t time.Time, includeCurrentDay bool) int {
	return daysUntil(t, LastDayOfMonth(t), includeCurrentDay)
}

// DaysToEndOfYear días que faltan hasta el 31 de diciembre.
func DaysToEndOfYear(t time.Time, includeCurrentDay bool) int {
	return daysUntil(t, time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location()), includeCurrentDay)
}

func daysUntil(from, to time.Time, includeCurrentDay bool) int {
	days := int(math.RoundToEven(to.Sub(from).Hours() / 24))
	if includeCurrentDay {
		days++
	}
	return days
}

// WithLastTime misma fecha a las 23:59:59.999.
func WithLastTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Age edad en años cumplidos a la fecha at.
func Age(birth, at time.Time) (int, error) {
	if err := validateRange(birth, at); err != nil {
		return 0, err
	}
	return age(birth, at), nil
}

// AgeToday edad en años cumplidos a la fecha actual.
func AgeToday(birth time.Time) int {
	return age(birth, time.Now().In(birth.Location()))
}

func age(birth, at time.Time) int {
	birth, at = truncateDay(birth), truncateDay(at)
	years := at.Year() - birth.Year()
	if birth.After(addMonths(at, -12*years)) {
		years--
	}
	return years
}

// Format devuelve la fecha en ISO-8601 sin zona ("2006-01-02T15:04:05.000")
// con 0 a 7 decimales truncados.
func Format(t time.Time, decimalPlaces int) (string, error) {
	if err := validateDecimals(decimalPlaces); err != nil {
		return "", err
	}
	return formatLocal(t, decimalPlaces), nil
}

// FormatWithOffset como Format agregando el desplazamiento horario (+hh:mm).
func FormatWithOffset(t time.Time, decimalPlaces int) (string, error) {
	if err := validateDecimals(decimalPlaces); err != nil {
		return "", err
	}
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign, offset = '-', -offset
	}
	minutes := offset / 60
	return fmt.Sprintf("%s%c%02d:%02d", formatLocal(t, decimalPlaces), sign, minutes/60, minutes%60), nil
}

func formatLocal(t time.Time, decimalPlaces int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d-%02d-%02dT%02d:%02d:%02d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	if decimalPlaces > 0 {
		ticks := fmt.Sprintf("%07d", t.Nanosecond()/100)
		b.WriteByte('.')
		b.WriteString(ticks[:decimalPlaces])
	}
	return b.String()
}

func validateDecimals(decimalPlaces int) error {
	if decimalPlaces < 0 {
		return fmt.Errorf("%w: el mínimo es 0, se recibió %d", ErrInvalidDecimalPlaces, decimalPlaces)
	}
	if decimalPlaces > 7 {
		return fmt.Errorf("%w: el máximo es 7, se recibió %d", ErrInvalidDecimalPlaces, decimalPlaces)
	}
	return nil
}

// addMonths suma meses ajustando al último día cuando el mes destino es más corto
// (31/01 + 1 mes = 29/02 en año bisiesto).
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	d := min(t.Day(), daysIn(first.Year(), first.Month()))
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
