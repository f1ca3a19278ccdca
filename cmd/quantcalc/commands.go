package main

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/quantities/codec"
	"github.com/hupe1980/quantities/unit"
)

func newCmdArith(op, short string, calc func() (calculator, error)) *cobra.Command {
	return &cobra.Command{
		Use:     op + " A B",
		Short:   short,
		Example: fmt.Sprintf("  quantcalc %s 1,2,3 4,5,6 --quantity length --unit m", op),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args)
			if err != nil {
				return err
			}
			c, err := calc()
			if err != nil {
				return err
			}
			out, err := c.arith(op, values[0], values[1])
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
}

func newCmdDiff(calc func() (calculator, error)) *cobra.Command {
	return &cobra.Command{
		Use:     "diff A B",
		Short:   "Subtract two absolute vectors, giving a relative vector",
		Example: "  quantcalc diff 10,20 5,5 --quantity time --unit min",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args)
			if err != nil {
				return err
			}
			c, err := calc()
			if err != nil {
				return err
			}
			out, err := c.diff(values[0], values[1])
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
}

func newCmdNormalize(calc func() (calculator, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize A",
		Short: "Scale a relative vector so that its magnitudes sum to one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[0])
			if err != nil {
				return err
			}
			c, err := calc()
			if err != nil {
				return err
			}
			out, err := c.normalize(values)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
}

func newCmdConvert(calc func() (calculator, error)) *cobra.Command {
	var absolute bool

	cmd := &cobra.Command{
		Use:     "convert A",
		Short:   "Print a vector in --display-unit",
		Example: "  quantcalc convert 0,100 --quantity temperature --unit °C --display-unit K --absolute",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[0])
			if err != nil {
				return err
			}
			c, err := calc()
			if err != nil {
				return err
			}
			out, err := c.convert(values, absolute)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&absolute, "absolute", false, "treat the values as absolute (apply unit offsets)")
	return cmd
}

func newCmdEncode(calc func() (calculator, error), s func() *settings) *cobra.Command {
	var absolute bool

	cmd := &cobra.Command{
		Use:   "encode A",
		Short: "Print the encoded snapshot of a vector",
		Long: "Print the encoded snapshot of a vector. Uncompressed output is printed as is,\n" +
			"compressed output as standard base64.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[0])
			if err != nil {
				return err
			}
			c, err := calc()
			if err != nil {
				return err
			}
			cd, ok := codec.ByName(s().Codec)
			if !ok {
				return fmt.Errorf("unknown codec %q (want one of %s)", s().Codec, strings.Join(codec.Names(), ", "))
			}
			alg, err := codec.ParseCompression(s().Compression)
			if err != nil {
				return err
			}

			data, err := c.encode(values, absolute, cd)
			if err != nil {
				return err
			}
			if alg == codec.CompressionNone {
				cmd.Println(string(data))
				return nil
			}
			packed, err := codec.Compress(data, alg)
			if err != nil {
				return err
			}
			cmd.Println(base64.StdEncoding.EncodeToString(packed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&absolute, "absolute", false, "encode an absolute vector")
	return cmd
}

func newCmdUnits() *cobra.Command {
	return &cobra.Command{
		Use:   "units [QUANTITY]",
		Short: "List the known quantities and their units",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantities := unit.Default.Quantities()
			if len(args) == 1 {
				quantities = nil
				for _, q := range unit.Default.Quantities() {
					if strings.EqualFold(q, args[0]) {
						quantities = append(quantities, q)
					}
				}
				if len(quantities) == 0 {
					return fmt.Errorf("%w: %q", unit.ErrUnknownQuantity, args[0])
				}
			}
			for _, q := range quantities {
				cmd.Printf("%s:", q)
				for _, d := range unit.Default.Units(q) {
					cmd.Printf(" %s", d.Abbreviation)
				}
				cmd.Println()
			}
			return nil
		},
	}
}
