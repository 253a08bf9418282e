package commands

import (
	"flag"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bedrock-tool/blockmap/locale"
	"golang.org/x/exp/slices"
)

type Arg struct {
	Name    string
	Desc    string
	Flag    string
	Default string
	Type    string
	Path    []string
	field   reflect.Value
}

func (a *Arg) Set(v string) error {
	switch a.field.Kind() {
	case reflect.String:
		a.field.SetString(v)
		return nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		if v == "" {
			a.field.SetInt(0)
			return nil
		}
		vi, err := strconv.ParseInt(v, 10, a.field.Type().Bits())
		if err != nil {
			return err
		}
		a.field.SetInt(vi)
		return nil
	case reflect.Bool:
		switch v {
		case "true":
			a.field.SetBool(true)
		case "false", "":
			a.field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool %s %s", a.Name, v)
		}
		return nil
	case reflect.Slice:
		sp := strings.Split(v, ",")
		if sp[0] == "" {
			sp = sp[:0]
		}
		a.field.Set(reflect.ValueOf(sp))
		return nil
	}
	panic("unimplemented")
}

func (a *Arg) String() string {
	if !a.field.IsValid() {
		return ""
	}
	return fmt.Sprint(a.field.Interface())
}

func (a *Arg) IsBoolFlag() bool {
	return a.Type == "bool"
}

// ParseArgsType lists the flags of a settings struct. Fields are tagged with
// flag (flag name), opt (display name), desc (description, "locale." picks a
// translation) and default.
func ParseArgsType(settings reflect.Value, path []string, without []string) ([]Arg, error) {
	if settings.Kind() == reflect.Pointer && settings.IsNil() || !settings.IsValid() {
		return nil, nil
	}
	var args []Arg
	settings = reflect.Indirect(settings)
	st := settings.Type()
	for i := 0; i < st.NumField(); i++ {
		fieldType := st.Field(i)
		field := settings.Field(i)
		flagName := fieldType.Tag.Get("flag")
		name := fieldType.Tag.Get("opt")
		desc := fieldType.Tag.Get("desc")
		defaultStr := fieldType.Tag.Get("default")

		if slices.Contains(without, flagName) {
			continue
		}
		if desc == "" {
			desc = name
		}
		if strings.HasPrefix(desc, "locale.") {
			desc = locale.Loc(desc[7:], nil)
		}

		var arg = Arg{
			Name:    name,
			Desc:    desc,
			Flag:    flagName,
			Path:    append(path, fieldType.Name),
			Default: defaultStr,
			field:   field,
		}

		switch fieldType.Type.Kind() {
		case reflect.String:
			arg.Type = "string"
		case reflect.Int, reflect.Int32, reflect.Int64:
			arg.Type = "int"
		case reflect.Bool:
			arg.Type = "bool"
		case reflect.Slice:
			if fieldType.Type.Elem().Kind() != reflect.String {
				return nil, fmt.Errorf("%s: unhandled slice type", fieldType.Name)
			}
			arg.Type = "slice"
		case reflect.Struct:
			without := strings.Split(fieldType.Tag.Get("without"), ",")
			args2, err := ParseArgsType(field, append(path, fieldType.Name), without)
			if err != nil {
				return nil, err
			}
			args = append(args, args2...)
			continue
		default:
			return nil, fmt.Errorf("%s: unhandled field type %s", fieldType.Name, fieldType.Type)
		}
		args = append(args, arg)
	}
	return args, nil
}

// RegisterFlags adds the flags of settings to flags. A slice field tagged
// flag:"-args" is returned and receives the positional arguments.
func RegisterFlags(settings any, flags *flag.FlagSet) (consumer *Arg, err error) {
	args, err := ParseArgsType(reflect.ValueOf(settings), nil, nil)
	if err != nil {
		return nil, err
	}
	for i := range args {
		arg := &args[i]
		if arg.Flag == "-args" {
			if arg.field.Kind() != reflect.Slice {
				return nil, fmt.Errorf("%s: non slice arg consumer", arg.Name)
			}
			consumer = arg
			continue
		}
		if err := arg.Set(arg.Default); err != nil {
			return nil, fmt.Errorf("default of %s: %w", arg.Flag, err)
		}
		flags.Var(arg, arg.Flag, arg.Desc)
	}
	return consumer, nil
}
