package runtime

// TypeClass identifies the category of a Type.
type TypeClass int

const (
	TypeVoid TypeClass = iota
	TypeNumber
	TypeBool
	TypeString
)

func (c TypeClass) String() string {
	switch c {
	case TypeVoid:
		return "void"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeString:
		return "str"
	default:
		return "unknown"
	}
}

// Type describes a value or a declared parameter/return type. Only numbers
// carry a unit.
type Type struct {
	Class TypeClass
	Unit  Unit
}

func VoidType() Type { return Type{Class: TypeVoid} }
func BoolType() Type { return Type{Class: TypeBool} }
func StringType() Type { return Type{Class: TypeString} }

// NumberType returns the numeric type carrying unit.
func NumberType(unit Unit) Type {
	return Type{Class: TypeNumber, Unit: unit}
}

// ScalarType is the dimensionless numeric type.
func ScalarType() Type {
	return Type{Class: TypeNumber}
}

// Equal compares classes and, for numbers, add-compatibility of the units.
func (t Type) Equal(other Type) bool {
	if t.Class != other.Class {
		return false
	}
	if t.Class == TypeNumber {
		return t.Unit.IsAddCompatible(other.Unit)
	}
	return true
}

func (t Type) IsNumber() bool { return t.Class == TypeNumber }
func (t Type) IsVoid() bool { return t.Class == TypeVoid }

// IsScalarNumber reports whether t is a dimensionless number.
func (t Type) IsScalarNumber() bool {
	return t.Class == TypeNumber && t.Unit.IsScalar()
}

func (t Type) String() string {
	switch t.Class {
	case TypeNumber:
		return t.Unit.String()
	case TypeBool:
		return "[bool]"
	case TypeString:
		return "[str]"
	default:
		return "[void]"
	}
}
