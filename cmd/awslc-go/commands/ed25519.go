package commands

import (
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/awslc-go/internal/cliconfig"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/ed25519"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

const pemPrivateKey = "PRIVATE KEY"

// NewEd25519Command groups key generation, signing and verification.
func NewEd25519Command(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ed25519",
		Short: "Ed25519 keys and signatures",
	}
	cmd.AddCommand(
		newEd25519KeygenCommand(env),
		newEd25519PubkeyCommand(env),
		newEd25519SignCommand(env),
		newEd25519VerifyCommand(env),
	)
	return cmd
}

func newEd25519KeygenCommand(env *Env) *cobra.Command {
	var (
		outFile string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a PKCS#8 private key and print its public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cliconfig.SecurePath(outFile)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s exists (use --force to overwrite)", outFile)
				}
			}
			doc, err := ed25519.GeneratePKCS8(rand.SystemRandom{})
			if err != nil {
				return err
			}
			defer doc.Close()
			kp, err := ed25519.FromPKCS8(doc.Bytes())
			if err != nil {
				return err
			}
			defer kp.Close()

			block := pem.EncodeToMemory(&pem.Block{Type: pemPrivateKey, Bytes: doc.Bytes()})
			defer memguard.WipeBytes(block)
			if err := os.WriteFile(path, block, 0o600); err != nil {
				return fmt.Errorf("write key: %w", err)
			}
			pub := kp.PublicKey()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pub[:]))
			env.log().WithField("file", outFile).Info("ed25519 key generated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "ed25519.pem", "Private key output file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing key file")
	return cmd
}

func newEd25519PubkeyCommand(env *Env) *cobra.Command {
	var keyFile string

	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key of a private key file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := loadEd25519Key(keyFile)
			if err != nil {
				return err
			}
			defer kp.Close()
			pub := kp.PublicKey()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pub[:]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyFile, "key", "k", "ed25519.pem", "Private key file")
	return cmd
}

func newEd25519SignCommand(env *Env) *cobra.Command {
	var keyFile string

	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Sign a file, or standard input, and print the hex signature",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			kp, err := loadEd25519Key(keyFile)
			if err != nil {
				return err
			}
			defer kp.Close()
			sig, err := kp.Sign(msg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sig))
			env.log().WithFields(logrus.Fields{"key": keyFile, "bytes": len(msg)}).Debug("message signed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyFile, "key", "k", "ed25519.pem", "Private key file")
	return cmd
}

func newEd25519VerifyCommand(env *Env) *cobra.Command {
	var pubHex, sigHex string

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Verify a hex signature over a file, or standard input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := hex.DecodeString(strings.TrimSpace(pubHex))
			if err != nil {
				return fmt.Errorf("--pub: %w", err)
			}
			sig, err := hex.DecodeString(strings.TrimSpace(sigHex))
			if err != nil {
				return fmt.Errorf("--sig: %w", err)
			}
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			if err := ed25519.Verify(pub, msg, sig); err != nil {
				env.log().Warn("signature rejected")
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	cmd.Flags().StringVar(&pubHex, "pub", "", "Hex public key")
	cmd.Flags().StringVar(&sigHex, "sig", "", "Hex signature")
	_ = cmd.MarkFlagRequired("pub")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func readMessage(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	path, err := cliconfig.SecurePath(args[0])
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path) // #nosec G304 -- path validated by SecurePath
}

// loadEd25519Key reads a PEM private key. The file contents live in a
// locked buffer until the key is parsed.
func loadEd25519Key(name string) (*ed25519.KeyPair, error) {
	path, err := cliconfig.SecurePath(name)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path) // #nosec G304 -- path validated by SecurePath
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}
	buf := memguard.NewBufferFromBytes(raw)
	defer buf.Destroy()

	block, _ := pem.Decode(buf.Bytes())
	if block == nil || block.Type != pemPrivateKey {
		return nil, errors.New("key file is not a PEM PRIVATE KEY")
	}
	defer memguard.WipeBytes(block.Bytes)
	return ed25519.FromPKCS8(block.Bytes)
}
