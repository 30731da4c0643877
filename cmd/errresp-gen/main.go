/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command errresp-gen writes the descriptor registration of a sealed error
// type, listing every variant found in the package.
//
// Typical use is a go:generate line next to the type:
//
//	//go:generate go run dirpx.dev/errresp/cmd/errresp-gen --type CreateUserError
//
// In CI, --check fails when the generated file is stale.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dirpx.dev/errresp/gen"
)

type options struct {
	typeName string
	dir      string
	output   string
	check    bool
	verbose  bool
}

func newRootCmd(logger hclog.Logger) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "errresp-gen",
		Short:         "Generate the errresp descriptor of a sealed error type.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			if opts.verbose {
				logger.SetLevel(hclog.Debug)
			}
			return run(logger, opts)
		},
	}

	bindFlags(cmd.Flags(), opts)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVar(&opts.typeName, "type", "", "sealed interface to describe (default: the type marked //errresp:derive)")
	fs.StringVar(&opts.dir, "dir", ".", "package directory")
	fs.StringVarP(&opts.output, "output", "o", "", "output file, relative to --dir (default: <type>_errresp.go)")
	fs.BoolVar(&opts.check, "check", false, "fail if the output file is stale instead of writing it")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")
}

func run(logger hclog.Logger, opts *options) error {
	logger.Debug("parsing package", "dir", opts.dir, "type", opts.typeName)
	if opts.check {
		path, err := gen.Check(opts.dir, opts.typeName, opts.output)
		if err != nil {
			return err
		}
		logger.Debug("generated file is up to date", "path", path)
		return nil
	}
	path, err := gen.Generate(opts.dir, opts.typeName, opts.output)
	if err != nil {
		return err
	}
	logger.Info("wrote descriptor", "path", path)
	return nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "errresp-gen",
		Level:  hclog.Info,
		Output: os.Stderr,
	})
	if err := newRootCmd(logger).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
