// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides a set of helper functions for
// working with the reflect package.
package reflectx

import (
	"fmt"
	"reflect"
	"strconv"
)

// StringSetter is implemented by enum types that can be set
// from their string names, which lets default tags use names.
type StringSetter interface {
	SetString(s string) error
}

// NonPointerValue returns a non-pointer version of the given value,
// following pointers until it reaches a non-pointer value.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// SetFromDefaultTags sets the values of fields in the given struct
// pointer based on `default:` struct field tags. Nested struct fields
// without a default tag are processed recursively.
func SetFromDefaultTags(obj any) error {
	if obj == nil {
		return nil
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: expected non-nil pointer to struct, got %T", obj)
	}
	return setFromDefaultTags(NonPointerValue(rv))
}

func setFromDefaultTags(v reflect.Value) error {
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: expected struct, got %v", v.Kind())
	}
	typ := v.Type()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok {
			if fv.Kind() == reflect.Struct {
				if err := setFromDefaultTags(fv); err != nil {
					return err
				}
			}
			continue
		}
		if err := SetFromString(fv, def); err != nil {
			return fmt.Errorf("reflectx.SetFromDefaultTags: field %s: %w", f.Name, err)
		}
	}
	return nil
}

// SetFromString sets the given settable value from the given string,
// using [StringSetter] when the value implements it.
func SetFromString(v reflect.Value, s string) error {
	if v.CanAddr() {
		if ss, ok := v.Addr().Interface().(StringSetter); ok {
			return ss.SetString(s)
		}
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(n)
	default:
		return fmt.Errorf("unsupported kind %v", v.Kind())
	}
	return nil
}
