package fibonacci

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agbru/fibdrv/internal/bignum"
)

// ErrUnknownCalculator is returned by Factory.Get for an unregistered name.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Constructor builds a Calculator for a digit capacity.
type Constructor func(capacity int) Calculator

// CalculatorFactory resolves calculators by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
}

// Factory is a registry of calculator constructors bound to one capacity.
// It is safe for concurrent use.
type Factory struct {
	mu       sync.RWMutex
	capacity int
	ctors    map[string]Constructor
}

// NewFactory returns an empty Factory for the given digit capacity.
func NewFactory(capacity int) *Factory {
	return &Factory{capacity: capacity, ctors: make(map[string]Constructor)}
}

// NewDefaultFactory returns a Factory with the "iterative" and "history"
// calculators registered.
func NewDefaultFactory(capacity int) *Factory {
	f := NewFactory(capacity)
	f.Register("iterative", func(c int) Calculator { return NewIterativeCalculator(c) })
	f.Register("history", func(c int) Calculator { return NewHistoryCalculator(c) })
	return f
}

var (
	globalOnce    sync.Once
	globalFactory *Factory
)

// GlobalFactory returns a shared default factory using
// bignum.DefaultCapacity.
func GlobalFactory() *Factory {
	globalOnce.Do(func() {
		globalFactory = NewDefaultFactory(bignum.DefaultCapacity)
	})
	return globalFactory
}

// Register adds or replaces the constructor for name.
func (f *Factory) Register(name string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[name] = ctor
}

// Get builds the calculator registered under name.
func (f *Factory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	ctor, ok := f.ctors[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownCalculator, name, strings.Join(f.List(), ", "))
	}
	return ctor(f.capacity), nil
}

// MustGet is like Get but panics on an unknown name.
func (f *Factory) MustGet(name string) Calculator {
	calc, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return calc
}

// List returns the registered names in sorted order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.ctors))
	for name := range f.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capacity returns the digit capacity passed to constructors.
func (f *Factory) Capacity() int { return f.capacity }
