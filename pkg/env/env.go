package env

import (
	"encoding"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TagValue   = "env"
	TagDefault = "env-default"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads the given dotenv files into the process environment and then
// fills root from it. Missing files are skipped; variables that are already
// set are never overridden.
func Load(root interface{}, files ...string) error {
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("can't load env file %s, err: %w", file, err)
		}
	}
	return Read(root)
}

// Read fills the tagged fields of the struct pointed to by root.
func Read(root interface{}) error {
	rootValue := reflect.ValueOf(root)
	if rootValue.Kind() != reflect.Ptr || rootValue.IsNil() {
		return fmt.Errorf("expected non-nil pointer, got %T", root)
	}

	rootValue = rootValue.Elem()
	if rootValue.Kind() != reflect.Struct {
		return fmt.Errorf("unexpected type %v", rootValue.Kind())
	}
	return readStruct(rootValue)
}

func readStruct(structValue reflect.Value) error {
	structType := structValue.Type()
	for i := 0; i < structValue.NumField(); i++ {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, hasTag := field.Tag.Lookup(TagValue)
		if !hasTag {
			if fieldValue.Kind() == reflect.Struct {
				if err := readStruct(fieldValue); err != nil {
					return err
				}
			}
			continue
		}

		name, options := parseTag(tag)
		value, found := os.LookupEnv(name)
		if !found {
			if options.Contains("required") {
				return fmt.Errorf("environment variable %s is required but the value is not provided", name)
			}

			def, hasDefault := field.Tag.Lookup(TagDefault)
			if !hasDefault {
				continue
			}
			value = def
		}

		if err := parseValue(fieldValue, value); err != nil {
			return fmt.Errorf("can't parse environment variable %v, err: %w", name, err)
		}
	}
	return nil
}

func parseValue(fieldValue reflect.Value, value string) error {
	if fieldValue.CanAddr() {
		if u, ok := fieldValue.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(value))
		}
	}

	fieldType := fieldValue.Type()
	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(value)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		fieldValue.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fieldType == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			fieldValue.SetInt(int64(d))
			return nil
		}

		number, err := strconv.ParseInt(value, 0, fieldType.Bits())
		if err != nil {
			return err
		}
		fieldValue.SetInt(number)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		number, err := strconv.ParseUint(value, 0, fieldType.Bits())
		if err != nil {
			return err
		}
		fieldValue.SetUint(number)

	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.Uint8 {
			fieldValue.SetBytes([]byte(value))
			return nil
		}

		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(fieldType, len(parts), len(parts))
		for i, part := range parts {
			if err := parseValue(slice.Index(i), strings.TrimSpace(part)); err != nil {
				return err
			}
		}
		fieldValue.Set(slice)

	case reflect.Ptr:
		if fieldValue.IsNil() {
			fieldValue.Set(reflect.New(fieldType.Elem()))
		}
		return parseValue(fieldValue.Elem(), value)

	default:
		return fmt.Errorf("unsupported type %s", fieldValue.Kind())
	}
	return nil
}

type tagOptions string

func parseTag(tag string) (string, tagOptions) {
	tag, opt, _ := strings.Cut(tag, ",")
	return tag, tagOptions(opt)
}

func (o tagOptions) Contains(optionName string) bool {
	s := string(o)
	for s != "" {
		var name string
		name, s, _ = strings.Cut(s, ",")
		if name == optionName {
			return true
		}
	}
	return false
}
