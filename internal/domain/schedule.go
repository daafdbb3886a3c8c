package domain

import (
	"math"
	"time"
)

const (
	DefaultProcessingDays = 1
	DefaultBufferDays     = 1
)

// transitBrackets - верхняя граница (не включительно) в км и число дней в пути
var transitBrackets = []struct {
	maxKm float64
	days  int
}{
	{300, 1},
	{600, 2},
	{1000, 3},
	{1500, 4},
}

const maxTransitDays = 5

// DeliverySchedule - прогноз доставки. Неизменяем после расчета.
type DeliverySchedule struct {
	ActivationDate time.Time `json:"activation_date"`
	ProcessingDays int       `json:"processing_days"`
	TransitDays    int       `json:"transit_days"`
	BufferDays     int       `json:"buffer_days"`
	DispatchDate   time.Time `json:"dispatch_date"`
	ExpectedDate   time.Time `json:"expected_date"`
	EarliestDate   time.Time `json:"earliest_date"`
	LatestDate     time.Time `json:"latest_date"`
	TotalDays      int       `json:"total_days"`
}

// TransitDays - ступенчатая функция расстояния. Отрицательное и NaN считаются нулем.
func TransitDays(distanceKm float64) int {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		distanceKm = 0
	}
	for _, b := range transitBrackets {
		if distanceKm < b.maxKm {
			return b.days
		}
	}
	return maxTransitDays
}

// SchedulePolicy - параметры графика: дни на обработку и страховочный буфер
type SchedulePolicy struct {
	ProcessingDays int
	BufferDays     int
}

// DefaultSchedulePolicy - 1 день обработки, 1 день буфера
var DefaultSchedulePolicy = SchedulePolicy{
	ProcessingDays: DefaultProcessingDays,
	BufferDays:     DefaultBufferDays,
}

// Compute считает график доставки. activation == nil означает "сегодня".
// Все даты - полночь в локации исходной даты, арифметика календарная.
func (p SchedulePolicy) Compute(activation *time.Time, distanceKm float64, today time.Time) DeliverySchedule {
	start := today
	if activation != nil {
		start = *activation
	}
	start = Midnight(start)

	transit := TransitDays(distanceKm)
	dispatch := start.AddDate(0, 0, p.ProcessingDays)
	expected := dispatch.AddDate(0, 0, transit+p.BufferDays)

	return DeliverySchedule{
		ActivationDate: start,
		ProcessingDays: p.ProcessingDays,
		TransitDays:    transit,
		BufferDays:     p.BufferDays,
		DispatchDate:   dispatch,
		ExpectedDate:   expected,
		EarliestDate:   expected,
		LatestDate:     expected.AddDate(0, 0, 1),
		TotalDays:      p.ProcessingDays + transit + p.BufferDays,
	}
}

// ComputeSchedule - расчет с политикой по умолчанию
func ComputeSchedule(activation *time.Time, distanceKm float64, today time.Time) DeliverySchedule {
	return DefaultSchedulePolicy.Compute(activation, distanceKm, today)
}

// Midnight отбрасывает время суток, сохраняя локацию
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsDelayed - доставка просрочена, если ожидаемая дата не позже сегодняшней
func IsDelayed(expected, today time.Time) bool {
	return !Midnight(expected).After(Midnight(today))
}
