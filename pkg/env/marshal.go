package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalEnv renders the `env`-tagged fields of the struct c points to as
// KEY=value lines, in field order. Zero values are left out so the parser's
// envDefault applies on the next load. Values godotenv would split or
// truncate are double-quoted.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("marshal env: want pointer to struct, got %T", c)
	}
	v = v.Elem()

	var b strings.Builder
	for _, field := range reflect.VisibleFields(v.Type()) {
		if !field.IsExported() || len(field.Index) != 1 {
			continue
		}

		tag, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		key, _, _ := strings.Cut(tag, ",")
		if key == "" {
			continue
		}

		val := v.FieldByIndex(field.Index)
		if val.IsZero() {
			continue
		}

		s, err := envValue(val)
		if err != nil {
			return "", fmt.Errorf("marshal env %s: %w", key, err)
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func envValue(v reflect.Value) (string, error) {
	var s string

	switch {
	case v.Type() == durationType:
		s = time.Duration(v.Int()).String()
	case v.Kind() == reflect.String:
		s = v.String()
	case v.CanInt():
		s = strconv.FormatInt(v.Int(), 10)
	case v.CanUint():
		s = strconv.FormatUint(v.Uint(), 10)
	case v.CanFloat():
		s = strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())
	case v.Kind() == reflect.Bool:
		s = strconv.FormatBool(v.Bool())
	default:
		return "", fmt.Errorf("unsupported kind %s", v.Kind())
	}

	if strings.ContainsAny(s, " #\"'\n") {
		s = strconv.Quote(s)
	}
	return s, nil
}
