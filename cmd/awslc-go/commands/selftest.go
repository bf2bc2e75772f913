package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/aead"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/agreement"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/digest"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/ed25519"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/hmac"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/kdf"
)

// knownAnswer is one published test vector.
type knownAnswer struct {
	name string
	want string
	run  func() ([]byte, error)
}

func unhex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func repeat(b byte, n int) []byte { return []byte(strings.Repeat(string([]byte{b}), n)) }

func knownAnswers() []knownAnswer {
	return []knownAnswer{
		{
			name: "SHA-256",
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			run: func() ([]byte, error) {
				out, err := digest.Digest(digest.SHA256, []byte("abc"))
				return out.Bytes(), err
			},
		},
		{
			// RFC 4231, test case 1.
			name: "HMAC-SHA-256",
			want: "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
			run: func() ([]byte, error) {
				key, err := hmac.NewKey(hmac.HMAC_SHA256, repeat(0x0b, 20))
				if err != nil {
					return nil, err
				}
				defer key.Close()
				tag, err := hmac.Sign(key, []byte("Hi There"))
				return tag.Bytes(), err
			},
		},
		{
			name: "AES-128-GCM",
			want: "58e2fccefa7e3061367f1d57a4e7455a",
			run: func() ([]byte, error) {
				ubk, err := aead.NewUnboundKey(aead.AES_128_GCM, make([]byte, 16))
				if err != nil {
					return nil, err
				}
				key := aead.NewLessSafeKey(ubk)
				defer key.Close()
				return key.Seal(aead.Nonce{}, nil, nil)
			},
		},
		{
			// RFC 8032, section 7.1, test 1.
			name: "Ed25519",
			want: "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
			run: func() ([]byte, error) {
				kp, err := ed25519.FromSeed(unhex("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"))
				if err != nil {
					return nil, err
				}
				defer kp.Close()
				sig, err := kp.Sign(nil)
				if err != nil {
					return nil, err
				}
				pub := kp.PublicKey()
				return sig, ed25519.Verify(pub[:], nil, sig)
			},
		},
		{
			// RFC 7748, section 6.1.
			name: "X25519",
			want: "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742",
			run: func() ([]byte, error) {
				priv, err := agreement.PrivateKeyFromBytes(agreement.X25519,
					unhex("77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a"))
				if err != nil {
					return nil, err
				}
				defer priv.Close()
				peer := agreement.UnparsedPublicKey{
					Algorithm: agreement.X25519,
					Bytes:     unhex("de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f"),
				}
				return agreement.Agree(priv, peer, func(secret []byte) ([]byte, error) {
					return append([]byte(nil), secret...), nil
				})
			},
		},
		{
			// RFC 5869, test case 1.
			name: "HKDF-SHA-256",
			want: "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865",
			run: func() ([]byte, error) {
				out := make([]byte, 42)
				err := kdf.HKDF(kdf.HKDF_SHA256, out, repeat(0x0b, 22),
					unhex("000102030405060708090a0b0c"), unhex("f0f1f2f3f4f5f6f7f8f9"))
				return out, err
			},
		},
	}
}

// errSelftest reports that at least one known-answer test failed.
var errSelftest = errors.New("selftest failed")

// NewSelftestCommand runs known-answer tests and reports the service
// indicator of each.
func NewSelftestCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run known-answer tests against the engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := awslc.Init(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, kat := range knownAnswers() {
				var got []byte
				ind, err := awslc.CheckServiceIndicator(func() error {
					var err error
					got, err = kat.run()
					return err
				})
				if err == nil {
					err = awslc.VerifySlicesAreEqual(got, unhex(kat.want))
				}
				status := "PASS"
				if err != nil {
					status = "FAIL"
					failed++
					env.log().WithFields(logrus.Fields{"test": kat.name, "error": err}).Error("known-answer test failed")
				}
				_, _ = fmt.Fprintf(out, "%-4s  %-13s %s\n", status, kat.name, ind)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errSelftest, failed, len(knownAnswers()))
			}
			return nil
		},
	}
}
