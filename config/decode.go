package config

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/httpclient"
)

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDuration reads bare numbers as seconds. Duration strings such
// as "1m30s" fall through to the next hook.
func secondsToDuration(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != durationType || from == durationType {
		return data, nil
	}
	v := reflect.ValueOf(data)
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(v.Int()) * time.Second, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(v.Uint()) * time.Second, nil
	case reflect.Float32, reflect.Float64:
		return time.Duration(v.Float() * float64(time.Second)), nil
	case reflect.String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64); err == nil {
			return time.Duration(f * float64(time.Second)), nil
		}
	}
	return data, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		secondsToDuration,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// FromMap decodes an option map into cfg, on top of whatever cfg already
// holds. Unknown keys are ignored and curl_options is read as
// transport_options. Defaults are not applied.
func FromMap(options map[string]any, cfg *httpclient.Config) error {
	if cfg == nil {
		return errors.MissingArgument("config")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook(),
		WeaklyTypedInput: true,
		Result:           cfg,
		TagName:          "mapstructure",
	})
	if err != nil {
		return errors.Configuration("could not create option decoder").WithCause(err)
	}
	if err := dec.Decode(withAliases(options)); err != nil {
		return errors.Configuration("invalid client options: " + err.Error()).WithCause(err)
	}
	return nil
}

// curlOptionsKey is the PHP client's name for transport_options.
const curlOptionsKey = "curl_options"

// withAliases returns options with curl_options renamed to
// transport_options. An explicit transport_options wins.
func withAliases(options map[string]any) map[string]any {
	alias, ok := options[curlOptionsKey]
	if !ok {
		return options
	}
	out := make(map[string]any, len(options))
	for k, v := range options {
		if k != curlOptionsKey {
			out[k] = v
		}
	}
	if _, ok := out["transport_options"]; !ok {
		out["transport_options"] = alias
	}
	return out
}

// bindEnv registers every mapstructure key of t with v so AutomaticEnv
// can supply it during Unmarshal.
func bindEnv(v *viper.Viper, prefix string, t reflect.Type) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" || !f.IsExported() {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		switch {
		case ft.Kind() == reflect.Struct && ft != durationType:
			bindEnv(v, key+".", ft)
		case ft.Kind() == reflect.Map:
			// maps cannot be expressed as a single variable
		default:
			_ = v.BindEnv(key)
		}
	}
}
