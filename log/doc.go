// Package log builds the [log/slog] handlers used by the ansify command.
//
// Three output formats are supported: [FormatJSON] and [FormatLogfmt] use
// the standard library handlers, [FormatText] uses a colorized
// charm.land/log logger. Use [NewHandler] to create a handler directly, or
// use [Config] with CLI flag integration via [github.com/spf13/pflag] and
// shell completion support via [github.com/spf13/cobra]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
package log
