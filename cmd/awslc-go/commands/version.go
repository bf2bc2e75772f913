package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
)

// NewVersionCommand prints the wrapper and engine versions.
func NewVersionCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print wrapper and engine versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := awslc.Init(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "awslc-go %s\n", awslc.WrapperVersion())
			_, _ = fmt.Fprintf(out, "engine   %s (%s@%s)\n", awslc.EngineVersion(), awslc.UpstreamDir, awslc.UpstreamSHA)
			_, _ = fmt.Fprintf(out, "fips     %t\n", awslc.FIPSMode())
			env.log().WithField("state", awslc.State().String()).Debug("version reported")
			return nil
		},
	}
}
