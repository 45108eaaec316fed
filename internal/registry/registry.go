// Package registry holds the ordered, index-addressable list of background
// effects the manager can switch between.
package registry

import (
	"errors"
	"fmt"

	"go-backdrop/internal/effect"
)

// ErrIndexOutOfRange is returned by Get for an index outside [0, Len()).
var ErrIndexOutOfRange = errors.New("registry: index out of range")

// Descriptor — именованная фабрика эффекта.
type Descriptor struct {
	Name string
	New  effect.Factory
}

// Registry — неизменяемый упорядоченный список эффектов.
type Registry struct {
	items []Descriptor
}

// New копирует дескрипторы; дальнейшие изменения исходного среза не влияют на реестр.
func New(items ...Descriptor) *Registry {
	return &Registry{items: append([]Descriptor(nil), items...)}
}

// Default — семь встроенных эффектов в порядке клавиш 1–7.
func Default() *Registry {
	return New(
		Descriptor{Name: "stars", New: effect.Variant("stars", effect.NewStars)},
		Descriptor{Name: "dna", New: effect.Variant("dna", effect.NewDNA)},
		Descriptor{Name: "waves", New: effect.Variant("waves", effect.NewWaves)},
		Descriptor{Name: "circuit", New: effect.Variant("circuit", effect.NewCircuit)},
		Descriptor{Name: "aurora", New: effect.Variant("aurora", effect.NewAurora)},
		Descriptor{Name: "fireflies", New: effect.Variant("fireflies", effect.NewFireflies)},
		Descriptor{Name: "neongrid", New: effect.Variant("neongrid", effect.NewNeonGrid)},
	)
}

// Get возвращает дескриптор по индексу.
func (r *Registry) Get(index int) (Descriptor, error) {
	if index < 0 || index >= len(r.items) {
		return Descriptor{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(r.items))
	}
	return r.items[index], nil
}

func (r *Registry) Len() int { return len(r.items) }

// Names возвращает имена эффектов по порядку.
func (r *Registry) Names() []string {
	names := make([]string, len(r.items))
	for i, d := range r.items {
		names[i] = d.Name
	}
	return names
}

// IndexOf ищет эффект по имени; -1, если такого нет.
func (r *Registry) IndexOf(name string) int {
	for i, d := range r.items {
		if d.Name == name {
			return i
		}
	}
	return -1
}
