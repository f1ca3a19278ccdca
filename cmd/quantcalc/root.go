package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hupe1980/quantities"
)

const envPrefix = "QUANTCALC"

// settings is the resolved view of flags, QUANTCALC_* variables and the
// optional config file.
type settings struct {
	Quantity    string
	Unit        string
	DisplayUnit string
	Storage     string
	Verbose     bool
	Precision   int
	Codec       string
	Compression string
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.StringP("quantity", "q", "Length", "physical quantity of the values")
	fs.StringP("unit", "u", "", "unit of the input values (default: SI unit)")
	fs.String("display-unit", "", "unit of the printed values (default: --unit)")
	fs.String("storage", "", "storage representation: dense or sparse")
	fs.BoolP("verbose", "v", false, "print mutability, kind and storage")
	fs.Int("precision", quantities.DefaultDisplayPrecision, "decimals in printed values, negative for shortest")
	fs.String("codec", "json", "codec used by encode")
	fs.String("compression", "none", "compression used by encode: none, lz4 or zstd")
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

func loadSettings(v *viper.Viper) (*settings, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return &settings{
		Quantity:    v.GetString("quantity"),
		Unit:        v.GetString("unit"),
		DisplayUnit: v.GetString("display-unit"),
		Storage:     v.GetString("storage"),
		Verbose:     v.GetBool("verbose"),
		Precision:   v.GetInt("precision"),
		Codec:       v.GetString("codec"),
		Compression: v.GetString("compression"),
	}, nil
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var s *settings

	root := &cobra.Command{
		Use:           "quantcalc",
		Short:         "Dimension-checked arithmetic on vectors of physical quantities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	addGlobalFlags(root.PersistentFlags())

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		v, err := newViper(root.PersistentFlags())
		if err != nil {
			return err
		}
		if s, err = loadSettings(v); err != nil {
			return err
		}
		opts, err := quantities.LoadConfigFromEnv().Options()
		if err != nil {
			return err
		}
		quantities.Configure(opts...)
		return nil
	}

	calc := func() (calculator, error) { return newCalculator(s) }

	root.AddCommand(
		newCmdArith("plus", "Add two relative vectors", calc),
		newCmdArith("minus", "Subtract two relative vectors", calc),
		newCmdArith("times", "Multiply two relative vectors elementwise", calc),
		newCmdArith("divide", "Divide two relative vectors elementwise", calc),
		newCmdDiff(calc),
		newCmdNormalize(calc),
		newCmdConvert(calc),
		newCmdEncode(calc, func() *settings { return s }),
		newCmdUnits(),
	)
	return root
}

// parseValues parses a comma separated list of magnitudes.
func parseValues(arg string) ([]float64, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, fmt.Errorf("empty value list")
	}
	fields := strings.Split(arg, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = x
	}
	return out, nil
}

func parseArgs(args []string) ([][]float64, error) {
	out := make([][]float64, len(args))
	for i, a := range args {
		values, err := parseValues(a)
		if err != nil {
			return nil, err
		}
		out[i] = values
	}
	return out, nil
}
