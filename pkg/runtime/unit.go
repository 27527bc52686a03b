package runtime

import (
	"sort"
	"strings"
)

// BaseUnit enumerates the dimensions a unit can be built from. The ordinal
// order is the rendering order: s, g, m, N, Pa, J first, the remaining SI
// units after them.
type BaseUnit int

const (
	BaseSecond BaseUnit = iota
	BaseGram
	BaseMeter
	BaseNewton
	BasePascal
	BaseJoule
	BaseAmpere
	BaseKelvin
	BaseMole
	BaseCandela
	BaseWatt
	BaseHertz
	BaseVolt
	BaseCoulomb
)

var baseUnitSymbols = [...]string{
	BaseSecond:  "s",
	BaseGram:    "g",
	BaseMeter:   "m",
	BaseNewton:  "N",
	BasePascal:  "Pa",
	BaseJoule:   "J",
	BaseAmpere:  "A",
	BaseKelvin:  "K",
	BaseMole:    "mol",
	BaseCandela: "cd",
	BaseWatt:    "W",
	BaseHertz:   "Hz",
	BaseVolt:    "V",
	BaseCoulomb: "C",
}

// Symbol returns the SI symbol of the base unit.
func (b BaseUnit) Symbol() string {
	if b < 0 || int(b) >= len(baseUnitSymbols) {
		return "?"
	}
	return baseUnitSymbols[b]
}

// LookupBaseUnit resolves an exact base unit symbol.
func LookupBaseUnit(symbol string) (BaseUnit, bool) {
	for i, s := range baseUnitSymbols {
		if s == symbol {
			return BaseUnit(i), true
		}
	}
	return 0, false
}

// Prefix is a metric prefix; the empty prefix means none.
type Prefix string

const (
	PrefixNone  Prefix = ""
	PrefixTera  Prefix = "T"
	PrefixGiga  Prefix = "G"
	PrefixMega  Prefix = "M"
	PrefixKilo  Prefix = "k"
	PrefixHecto Prefix = "h"
	PrefixDeca  Prefix = "da"
	PrefixDeci  Prefix = "d"
	PrefixCenti Prefix = "c"
	PrefixMilli Prefix = "m"
	PrefixMicro Prefix = "u"
	PrefixNano  Prefix = "n"
)

// knownPrefixes lists two-letter prefixes first so "dam" is deca-metre
// rather than deci-"am".
var knownPrefixes = []Prefix{
	PrefixDeca,
	PrefixTera, PrefixGiga, PrefixMega, PrefixKilo, PrefixHecto,
	PrefixDeci, PrefixCenti, PrefixMilli, PrefixMicro, PrefixNano,
}

// UnitComponent is one base unit entry of a numerator or denominator.
type UnitComponent struct {
	Base   BaseUnit
	Prefix Prefix
	Power  int
}

func (c UnitComponent) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Prefix))
	sb.WriteString(c.Base.Symbol())
	if c.Power != 1 {
		sb.WriteString(itoa(c.Power))
	}
	return sb.String()
}

// Unit is a reduced fraction of prefixed base units. The zero value is the
// scalar (dimensionless) unit. Units are never mutated after construction.
type Unit struct {
	num map[BaseUnit]UnitComponent
	den map[BaseUnit]UnitComponent
}

// Scalar returns the dimensionless unit.
func Scalar() Unit {
	return Unit{}
}

// NewUnit builds a single-component unit in the numerator.
func NewUnit(base BaseUnit, prefix Prefix, power int) (Unit, error) {
	if power < 1 {
		return Unit{}, NewError(ErrArgument, "unit power must be positive, got %d", power)
	}
	return Unit{num: map[BaseUnit]UnitComponent{
		base: {Base: base, Prefix: prefix, Power: power},
	}}, nil
}

// IsScalar reports whether the unit has no components.
func (u Unit) IsScalar() bool {
	return len(u.num) == 0 && len(u.den) == 0
}

// Numerator returns the numerator components ordered by base unit.
func (u Unit) Numerator() []UnitComponent {
	return sortedComponents(u.num)
}

// Denominator returns the denominator components ordered by base unit.
func (u Unit) Denominator() []UnitComponent {
	return sortedComponents(u.den)
}

// Multiply returns u*other.
func (u Unit) Multiply(other Unit) (Unit, error) {
	return u.Combine("*", other)
}

// Divide returns u/other.
func (u Unit) Divide(other Unit) (Unit, error) {
	return u.Combine("/", other)
}

// Combine merges other into a copy of u using op ("*" or "/") and reduces
// the result. Entries of the same base unit must share a prefix.
func (u Unit) Combine(op string, other Unit) (Unit, error) {
	out := u.clone()
	var toNum, toDen map[BaseUnit]UnitComponent
	switch op {
	case "*":
		toNum, toDen = other.num, other.den
	case "/":
		toNum, toDen = other.den, other.num
	default:
		return Unit{}, NewError(ErrArgument, "unsupported unit operator '%s'", op)
	}
	if err := mergeComponents(out.num, toNum); err != nil {
		return Unit{}, err
	}
	if err := mergeComponents(out.den, toDen); err != nil {
		return Unit{}, err
	}
	if err := out.reduce(); err != nil {
		return Unit{}, err
	}
	return out.compact(), nil
}

// IsAddCompatible reports whether both units carry the same (base, power)
// pairs on each side. Prefixes are ignored.
func (u Unit) IsAddCompatible(other Unit) bool {
	return samePowers(u.num, other.num) && samePowers(u.den, other.den)
}

// Equal is strict equality, prefixes included.
func (u Unit) Equal(other Unit) bool {
	return sameComponents(u.num, other.num) && sameComponents(u.den, other.den)
}

// String renders the unit as "[1]" or "[(num)/(den)]".
func (u Unit) String() string {
	if u.IsScalar() {
		return "[1]"
	}
	return "[(" + joinComponents(u.Numerator()) + ")/(" + joinComponents(u.Denominator()) + ")]"
}

func (u Unit) clone() Unit {
	out := Unit{
		num: make(map[BaseUnit]UnitComponent, len(u.num)),
		den: make(map[BaseUnit]UnitComponent, len(u.den)),
	}
	for k, v := range u.num {
		out.num[k] = v
	}
	for k, v := range u.den {
		out.den[k] = v
	}
	return out
}

func (u Unit) compact() Unit {
	if len(u.num) == 0 {
		u.num = nil
	}
	if len(u.den) == 0 {
		u.den = nil
	}
	return u
}

func (u Unit) reduce() error {
	for base, top := range u.num {
		bottom, ok := u.den[base]
		if !ok {
			continue
		}
		if top.Prefix != bottom.Prefix {
			return prefixMismatch(top, bottom)
		}
		diff := top.Power - bottom.Power
		switch {
		case diff < 0:
			bottom.Power = -diff
			u.den[base] = bottom
			delete(u.num, base)
		case diff == 0:
			delete(u.num, base)
			delete(u.den, base)
		default:
			top.Power = diff
			u.num[base] = top
			delete(u.den, base)
		}
	}
	return nil
}

func mergeComponents(dst, src map[BaseUnit]UnitComponent) error {
	for base, comp := range src {
		existing, ok := dst[base]
		if !ok {
			dst[base] = comp
			continue
		}
		if existing.Prefix != comp.Prefix {
			return prefixMismatch(existing, comp)
		}
		existing.Power += comp.Power
		dst[base] = existing
	}
	return nil
}

func prefixMismatch(a, b UnitComponent) error {
	return NewError(ErrUnitMismatch, "different prefixes cannot combine: '%s%s' and '%s%s'",
		a.Prefix, a.Base.Symbol(), b.Prefix, b.Base.Symbol())
}

func samePowers(a, b map[BaseUnit]UnitComponent) bool {
	if len(a) != len(b) {
		return false
	}
	for base, comp := range a {
		other, ok := b[base]
		if !ok || other.Power != comp.Power {
			return false
		}
	}
	return true
}

func sameComponents(a, b map[BaseUnit]UnitComponent) bool {
	if len(a) != len(b) {
		return false
	}
	for base, comp := range a {
		if other, ok := b[base]; !ok || other != comp {
			return false
		}
	}
	return true
}

func sortedComponents(m map[BaseUnit]UnitComponent) []UnitComponent {
	out := make([]UnitComponent, 0, len(m))
	for _, comp := range m {
		out = append(out, comp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out
}

func joinComponents(comps []UnitComponent) string {
	parts := make([]string, len(comps))
	for i, comp := range comps {
		parts[i] = comp.String()
	}
	return strings.Join(parts, "*")
}
