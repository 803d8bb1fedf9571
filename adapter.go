package awkish

import (
	"fmt"
	"reflect"
)

// Condition is the uniform adapted form of a registered predicate.
// Any result other than nil, false or Absent is treated as a match.
type Condition func(r *Record) (any, error)

// Action is the uniform adapted form of a registered action.
type Action func(r *Record) error

// truthy reports whether a condition result triggers the paired action.
func truthy(v any) bool {
	return v != nil && v != false && v != any(Absent)
}

// echoAction is the default action: re-emit the current line verbatim.
func echoAction(r *Record) error {
	r.Echo()
	return nil
}

// asCondition adapts a user-supplied predicate to the uniform form.
// Accepted shapes: bool, Condition, func(*Record) (any, error),
// func(*Record) any, func(*Record) bool, and *Bound.
func asCondition(v any) (Condition, error) {
	switch f := v.(type) {
	case bool:
		return func(*Record) (any, error) { return f, nil }, nil
	case Condition:
		return f, nil
	case func(*Record) (any, error):
		return f, nil
	case func(*Record) any:
		return func(r *Record) (any, error) { return f(r), nil }, nil
	case func(*Record) bool:
		return func(r *Record) (any, error) { return f(r), nil }, nil
	case *Bound:
		if f.err != nil {
			return nil, f.err
		}
		return f.invoke, nil
	}
	return nil, &ConfigError{Message: fmt.Sprintf("unsupported condition type %T", v)}
}

// asAction adapts a user-supplied action to the uniform form. A nil
// action means the default: echo the current line. Accepted shapes:
// Action, func(*Record), func(*Record) error, and *Bound.
func asAction(v any) (Action, error) {
	switch f := v.(type) {
	case nil:
		return echoAction, nil
	case Action:
		return f, nil
	case func(*Record) error:
		return f, nil
	case func(*Record):
		return func(r *Record) error { f(r); return nil }, nil
	case *Bound:
		if f.err != nil {
			return nil, f.err
		}
		return func(r *Record) error {
			_, err := f.invoke(r)
			return err
		}, nil
	}
	return nil, &ConfigError{Message: fmt.Sprintf("unsupported action type %T", v)}
}

// Arg declares one named parameter of a bound callable.
type Arg struct {
	name   string
	def    any
	hasDef bool
}

// P declares a parameter resolved from the record context under name.
func P(name string) Arg {
	return Arg{name: name}
}

// Or attaches a default value, used when the context does not expose
// the parameter's name.
func (a Arg) Or(def any) Arg {
	a.def = def
	a.hasDef = true
	return a
}

// Bound is a callable adapted from an arbitrary function plus its
// declared parameter list. The binder is built once here; per-record
// invocation only resolves names against the context.
type Bound struct {
	fn     reflect.Value
	params []Arg
	in     []reflect.Type
	retErr int // index of the error return, or -1
	retVal int // index of the value return, or -1
	err    error
}

// Bind adapts fn, an arbitrary function, using the declared parameter
// list. Each parameter resolves, in order: to the context value of that
// name, else to its declared default, else (for field references f1,
// f2, ... while a line is current) to Absent, else the call fails with
// a MissingArgumentError.
//
// Bind never panics; configuration problems are reported when the
// result is registered.
func Bind(fn any, params ...Arg) *Bound {
	b := &Bound{retErr: -1, retVal: -1}
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		b.err = &ConfigError{Message: fmt.Sprintf("Bind: %T is not a function", fn)}
		return b
	}
	if t.IsVariadic() {
		b.err = &ConfigError{Message: "Bind: variadic functions are not supported"}
		return b
	}
	if t.NumIn() != len(params) {
		b.err = &ConfigError{Message: fmt.Sprintf(
			"Bind: %d parameters declared for a function of %d", len(params), t.NumIn())}
		return b
	}
	b.fn = reflect.ValueOf(fn)
	b.params = params
	b.in = make([]reflect.Type, t.NumIn())
	errType := reflect.TypeOf((*error)(nil)).Elem()
	for i := range b.in {
		b.in[i] = t.In(i)
	}
	for i, p := range params {
		if p.name == "" {
			b.err = &ConfigError{Message: fmt.Sprintf("Bind: parameter %d has no name", i)}
			return b
		}
		if p.hasDef {
			if _, err := conform(p.def, b.in[i], p.name); err != nil {
				b.err = err
				return b
			}
			continue
		}
		// A field reference can resolve to Absent, which only an
		// interface parameter can hold.
		if _, ok := fieldIndex(p.name); ok && b.in[i].Kind() != reflect.Interface {
			b.err = &ConfigError{Message: fmt.Sprintf(
				"Bind: field parameter %q must declare a default or be typed any", p.name)}
			return b
		}
	}
	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errType {
			b.retErr = 0
		} else {
			b.retVal = 0
		}
	case 2:
		if t.Out(1) != errType {
			b.err = &ConfigError{Message: "Bind: second return value must be error"}
			return b
		}
		b.retVal, b.retErr = 0, 1
	default:
		b.err = &ConfigError{Message: "Bind: too many return values"}
		return b
	}
	return b
}

// invoke resolves the declared parameters against r and calls the
// bound function. It is a pure read projection over the context; any
// writes the callable performs go through Record methods.
func (b *Bound) invoke(r *Record) (any, error) {
	args := make([]reflect.Value, len(b.params))
	for i, p := range b.params {
		v, ok := r.Value(p.name)
		if !ok {
			switch {
			case p.hasDef:
				v = p.def
			case r.hasLine && isFieldRef(p.name):
				v = Absent
			default:
				return nil, &MissingArgumentError{Name: p.name}
			}
		}
		rv, err := conform(v, b.in[i], p.name)
		if err != nil {
			return nil, err
		}
		args[i] = rv
	}
	outs := b.fn.Call(args)
	var result any
	if b.retVal >= 0 {
		result = outs[b.retVal].Interface()
	}
	if b.retErr >= 0 {
		if e := outs[b.retErr].Interface(); e != nil {
			return result, e.(error)
		}
	}
	return result, nil
}

func isFieldRef(name string) bool {
	_, ok := fieldIndex(name)
	return ok
}

// conform converts a resolved value to the parameter's declared type.
func conform(v any, t reflect.Type, name string) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, &ConfigError{Message: fmt.Sprintf(
			"parameter %q: nil value for %s", name, t)}
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) && isNumeric(rv.Type()) && isNumeric(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, &ConfigError{Message: fmt.Sprintf(
		"parameter %q: value of type %T is not assignable to %s", name, v, t)}
}

func isNumeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
