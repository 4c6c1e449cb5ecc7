package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// applyEnv overrides every `env`-tagged field of the config tree that has its
// variable set. All bad variables are reported together.
func applyEnv(target interface{}) error {
	v := reflect.Indirect(reflect.ValueOf(target))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var errs []error
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), v.Type().Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field.Addr().Interface()); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		name := meta.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := assign(field, raw); err != nil {
			errs = append(errs, fmt.Errorf("%s (%s): %w", name, meta.Name, err))
		}
	}
	return errors.Join(errs...)
}

func assign(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return errors.New("field is not settable")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("want true or false, got %q", raw)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("want an integer, got %q", raw)
		}
		field.SetInt(n)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("cannot fill %s from a list", field.Type())
		}
		field.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("cannot fill %s from the environment", field.Kind())
	}
	return nil
}

// splitList reads values like SERVER_ALLOWED_ORIGINS=a, b into [a b].
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
