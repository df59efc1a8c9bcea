// Package config loads Ruwler client settings.
//
// Sources, lowest precedence first: defaults, a ruwler.yml (or .yaml,
// .json, .toml) file, a .env file and RUWLER_* environment variables.
// Nested keys map to environment variables by upper-casing and joining
// with underscores, so transport_options.timeout is read from
// RUWLER_TRANSPORT_OPTIONS_TIMEOUT.
//
// # Usage
//
//	settings, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client, err := httpclient.New(settings.Client)
//
// FromMap decodes a plain option map, the form used when options are
// passed programmatically. Unknown keys are ignored and durations accept
// either Go duration strings ("45s") or a number of seconds.
package config
