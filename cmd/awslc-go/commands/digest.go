package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/awslc-go/internal/cliconfig"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/digest"
)

var digestAlgorithms = map[string]*digest.Algorithm{
	"sha1":       digest.SHA1_FOR_LEGACY_USE_ONLY,
	"sha224":     digest.SHA224,
	"sha256":     digest.SHA256,
	"sha384":     digest.SHA384,
	"sha512":     digest.SHA512,
	"sha512-256": digest.SHA512_256,
	"sha3-256":   digest.SHA3_256,
	"sha3-384":   digest.SHA3_384,
	"sha3-512":   digest.SHA3_512,
}

func digestNames() string {
	names := make([]string, 0, len(digestAlgorithms))
	for n := range digestAlgorithms {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// NewDigestCommand hashes files, or stdin when no file is named.
func NewDigestCommand(env *Env) *cobra.Command {
	var algName string

	cmd := &cobra.Command{
		Use:   "digest [file...]",
		Short: "Compute message digests",
		Long:  "Compute a digest of each file, or of standard input. Algorithms: " + digestNames() + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, ok := digestAlgorithms[strings.ToLower(algName)]
			if !ok {
				return fmt.Errorf("unknown algorithm %q (want one of %s)", algName, digestNames())
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				sum, err := digestReader(alg, cmd.InOrStdin())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%s  -\n", sum)
				return nil
			}
			for _, name := range args {
				sum, err := digestFile(alg, name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%s  %s\n", sum, name)
				env.log().WithFields(logrus.Fields{"alg": alg.String(), "file": name}).Debug("digest computed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algName, "alg", "a", "sha256", "Digest algorithm")
	return cmd
}

func digestFile(alg *digest.Algorithm, name string) (string, error) {
	path, err := cliconfig.SecurePath(name)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path) // #nosec G304 -- path validated by SecurePath
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()
	return digestReader(alg, f)
}

func digestReader(alg *digest.Algorithm, r io.Reader) (string, error) {
	ctx, err := digest.NewContext(alg)
	if err != nil {
		return "", err
	}
	defer ctx.Close()
	if _, err := io.Copy(ctx, r); err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	sum, err := ctx.Finish()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum.Bytes()), nil
}
