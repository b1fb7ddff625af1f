package bootc

import (
	"reflect"
	"time"

	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
)

// Object is an ordered key/value object, the dynamic representation of a
// document object. Keys keep their first insertion position.
type Object = eng.Object

// NewObject returns an empty Object.
func NewObject() *Object { return eng.NewObject() }

// Equal reports structural equality of two dynamic values. Objects are
// compared as key sets, numbers by value and times by instant.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		equal := true
		x.Range(func(k string, xv any) bool {
			yv, ok := y.Get(k)
			equal = ok && Equal(xv, yv)
			return equal
		})
		return equal
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	}
	if eng.NumbersEqual(a, b) {
		return true
	}
	return reflect.DeepEqual(a, b)
}
