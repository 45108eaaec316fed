// internal/utils/prng.go
package utils

import (
	"math"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
)

// PRNGService — это обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом в эффектах.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// SeedFor выводит сид эффекта из общего сида и имени эффекта,
// чтобы разные эффекты с одним общим сидом не повторяли друг друга.
// Общий сид 0 означает «случайно» и остаётся нулём.
func SeedFor(base int64, name string) int64 {
	if base == 0 {
		return 0
	}
	h := xxhash.New()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(uint64(base) >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(name)
	seed := int64(h.Sum64() & math.MaxInt64)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Range возвращает случайное число в диапазоне [lo, hi).
func (s *PRNGService) Range(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Centered возвращает (rand - 0.5) * span, то есть число в [-span/2, span/2).
func (s *PRNGService) Centered(span float64) float64 {
	return (s.rng.Float64() - 0.5) * span
}

// Angle возвращает случайный угол в [0, 2π).
func (s *PRNGService) Angle() float64 {
	return s.rng.Float64() * 2 * math.Pi
}

// Chance возвращает true с вероятностью p.
func (s *PRNGService) Chance(p float64) bool {
	return s.rng.Float64() < p
}
