// Package jitter добавляет случайный разброс к задержкам повторных попыток,
// чтобы клиенты не переподключались одновременно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — разброс по умолчанию (до +50% к задержке).
const DefaultJitter = 0.5

// Duration возвращает d, увеличенную на случайную долю в пределах [0, factor).
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}

	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// ExponentialBackoff возвращает задержку перед попыткой attempt (с нуля):
// base, удвоенная attempt раз и ограниченная max, плюс jitter.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	d := base
	for i := 0; i < attempt && d < max; i++ {
		d *= 2
	}

	if d > max {
		d = max
	}

	return Duration(d, factor)
}
